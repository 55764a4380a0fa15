package remote

import (
	"errors"
	"fmt"
	"strings"
)

// Collection names below a user's root document.
const (
	UsersCollection        = "users"
	WaterEntriesCollection = "waterEntries"
	SettingsCollection     = "settings"
	ProfileCollection      = "profile"
	ChallengesCollection   = "challenges"
	AchievementsCollection = "achievements"
)

// SingletonID is the document id used for single-valued families.
const SingletonID = "current"

// LastSyncAtField is the field on the user root document holding the
// watermark of the last fully successful sync, in Unix milliseconds.
const LastSyncAtField = "lastSyncAt"

// ErrInvalidRef is returned when a reference cannot address a document.
var ErrInvalidRef = errors.New("invalid document reference")

// Ref addresses a single document.
type Ref struct {
	Collection string
	ID         string
}

// Path returns the slash separated path of the document.
func (r Ref) Path() string {
	return r.Collection + "/" + r.ID
}

func (r Ref) String() string {
	return r.Path()
}

// Validate checks that the reference addresses exactly one document.
func (r Ref) Validate() error {
	if r.Collection == "" || r.ID == "" {
		return fmt.Errorf("%w: empty collection or id in %q", ErrInvalidRef, r.Path())
	}
	if strings.Contains(r.ID, "/") {
		return fmt.Errorf("%w: id %q contains a slash", ErrInvalidRef, r.ID)
	}
	return nil
}

// UserRef returns the reference of the user's root document.
func UserRef(userID string) Ref {
	return Ref{Collection: UsersCollection, ID: userID}
}

// FamilyCollection returns the collection path of a family below the user root.
func FamilyCollection(userID, family string) string {
	return UsersCollection + "/" + userID + "/" + family
}

// FamilyRef returns the reference of one document of a family.
func FamilyRef(userID, family, id string) Ref {
	return Ref{Collection: FamilyCollection(userID, family), ID: id}
}
