package codec

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aquatrack/hydrosync/internal/model"
	"github.com/aquatrack/hydrosync/internal/remote"
)

// WaterEntryID returns the document id of a water entry.
func WaterEntryID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// EncodeWaterEntry converts a water entry to its remote document.
func EncodeWaterEntry(e model.WaterEntry) remote.Document {
	return remote.Document{
		"id":        e.ID,
		"amountMl":  int64(e.AmountML),
		"drinkType": e.DrinkType,
		"timestamp": toMillis(e.Timestamp),
		"createdAt": toMillis(e.CreatedAt),
	}
}

// DecodeWaterEntry converts a remote document into a water entry. The id
// comes from the document id, which is authoritative over the id field.
func DecodeWaterEntry(docID string, doc remote.Document) (model.WaterEntry, error) {
	id, err := strconv.ParseInt(docID, 10, 64)
	if err != nil {
		return model.WaterEntry{}, &DecodeError{Family: remote.WaterEntriesCollection, ID: docID, Err: fmt.Errorf("invalid id: %w", err)}
	}
	r := newReader(remote.WaterEntriesCollection, docID, doc)
	e := model.WaterEntry{
		ID:        id,
		AmountML:  r.int("amountMl", true),
		DrinkType: r.string("drinkType", false),
		Timestamp: r.time("timestamp", true),
		CreatedAt: r.time("createdAt", false),
	}
	if r.err != nil {
		return model.WaterEntry{}, r.err
	}
	if e.DrinkType == "" {
		e.DrinkType = model.DefaultDrinkType
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = e.Timestamp
	}
	if err := e.Validate(); err != nil {
		return model.WaterEntry{}, &DecodeError{Family: remote.WaterEntriesCollection, ID: docID, Err: err}
	}
	return e, nil
}

// EncodeSettings converts settings to their remote document.
func EncodeSettings(s model.Settings) remote.Document {
	return remote.Document{
		"dailyGoalMl":             int64(s.DailyGoalML),
		"unit":                    s.Unit,
		"remindersEnabled":        s.RemindersEnabled,
		"reminderIntervalMinutes": int64(s.ReminderIntervalMinutes),
		"wakeTime":                s.WakeTime,
		"sleepTime":               s.SleepTime,
		"updatedAt":               toMillis(s.UpdatedAt),
	}
}

// DecodeSettings converts a remote document into settings.
func DecodeSettings(doc remote.Document) (model.Settings, error) {
	r := newReader(remote.SettingsCollection, remote.SingletonID, doc)
	s := model.Settings{
		DailyGoalML:             r.int("dailyGoalMl", true),
		Unit:                    r.string("unit", false),
		RemindersEnabled:        r.bool("remindersEnabled"),
		ReminderIntervalMinutes: r.int("reminderIntervalMinutes", false),
		WakeTime:                r.string("wakeTime", false),
		SleepTime:               r.string("sleepTime", false),
		UpdatedAt:               r.time("updatedAt", false),
	}
	if r.err != nil {
		return model.Settings{}, r.err
	}
	if s.Unit == "" {
		s.Unit = model.UnitMilliliters
	}
	if err := s.Validate(); err != nil {
		return model.Settings{}, &DecodeError{Family: remote.SettingsCollection, ID: remote.SingletonID, Err: err}
	}
	return s, nil
}

// EncodeProfile converts a profile to its remote document.
func EncodeProfile(p model.Profile) remote.Document {
	return remote.Document{
		"displayName":   p.DisplayName,
		"level":         int64(p.Level),
		"xp":            p.XP,
		"currentStreak": int64(p.CurrentStreak),
		"longestStreak": int64(p.LongestStreak),
		"totalIntakeMl": p.TotalIntakeML,
		"updatedAt":     toMillis(p.UpdatedAt),
	}
}

// DecodeProfile converts a remote document into a profile.
func DecodeProfile(doc remote.Document) (model.Profile, error) {
	r := newReader(remote.ProfileCollection, remote.SingletonID, doc)
	p := model.Profile{
		DisplayName:   r.string("displayName", false),
		Level:         r.int("level", false),
		XP:            r.int64("xp", false),
		CurrentStreak: r.int("currentStreak", false),
		LongestStreak: r.int("longestStreak", false),
		TotalIntakeML: r.int64("totalIntakeMl", false),
		UpdatedAt:     r.time("updatedAt", false),
	}
	if r.err != nil {
		return model.Profile{}, r.err
	}
	if err := p.Validate(); err != nil {
		return model.Profile{}, &DecodeError{Family: remote.ProfileCollection, ID: remote.SingletonID, Err: err}
	}
	return p, nil
}

// EncodeChallenge converts a challenge to its remote document.
func EncodeChallenge(c model.Challenge) remote.Document {
	doc := remote.Document{
		"id":            c.ID,
		"type":          c.Type,
		"title":         c.Title,
		"targetMl":      int64(c.TargetML),
		"durationDays":  int64(c.DurationDays),
		"startDate":     toMillis(c.StartDate),
		"isActive":      c.IsActive,
		"isCompleted":   c.IsCompleted,
		"currentStreak": int64(c.CurrentStreak),
		"violations":    millisList(c.Violations),
	}
	if c.CompletedAt != nil {
		doc["completedAt"] = toMillis(*c.CompletedAt)
	}
	return doc
}

// DecodeChallenge converts a remote document into a challenge. Every field
// is optional; absent fields decode to their zero values.
func DecodeChallenge(docID string, doc remote.Document) (model.Challenge, error) {
	r := newReader(remote.ChallengesCollection, docID, doc)
	c := model.Challenge{
		ID:            docID,
		Type:          r.string("type", false),
		Title:         r.string("title", false),
		TargetML:      r.int("targetMl", false),
		DurationDays:  r.int("durationDays", false),
		StartDate:     r.time("startDate", false),
		IsActive:      r.bool("isActive"),
		IsCompleted:   r.bool("isCompleted"),
		CurrentStreak: r.int("currentStreak", false),
		Violations:    r.timeList("violations"),
		CompletedAt:   r.optionalTime("completedAt"),
	}
	if r.err != nil {
		return model.Challenge{}, r.err
	}
	if err := c.Validate(); err != nil {
		return model.Challenge{}, &DecodeError{Family: remote.ChallengesCollection, ID: docID, Err: err}
	}
	return c, nil
}

// EncodeAchievement converts an achievement to its remote document.
func EncodeAchievement(a model.Achievement) remote.Document {
	doc := remote.Document{
		"id":          a.ID,
		"title":       a.Title,
		"description": a.Description,
		"isUnlocked":  a.IsUnlocked,
		"progress":    int64(a.Progress),
	}
	if a.UnlockedAt != nil {
		doc["unlockedAt"] = toMillis(*a.UnlockedAt)
	}
	return doc
}

// DecodeAchievement converts a remote document into an achievement.
func DecodeAchievement(docID string, doc remote.Document) (model.Achievement, error) {
	r := newReader(remote.AchievementsCollection, docID, doc)
	a := model.Achievement{
		ID:          docID,
		Title:       r.string("title", false),
		Description: r.string("description", false),
		IsUnlocked:  r.bool("isUnlocked"),
		UnlockedAt:  r.optionalTime("unlockedAt"),
		Progress:    r.int("progress", false),
	}
	if r.err != nil {
		return model.Achievement{}, r.err
	}
	if err := a.Validate(); err != nil {
		return model.Achievement{}, &DecodeError{Family: remote.AchievementsCollection, ID: docID, Err: err}
	}
	return a, nil
}

// DecodeLastSyncAt reads the last-sync watermark from a user root document.
// It returns nil when the field has never been written.
func DecodeLastSyncAt(userID string, doc remote.Document) (*time.Time, error) {
	r := newReader(remote.UsersCollection, userID, doc)
	t := r.optionalTime(remote.LastSyncAtField)
	if r.err != nil {
		return nil, r.err
	}
	return t, nil
}

// EncodeLastSyncAt returns the merge patch stamping the last-sync watermark.
func EncodeLastSyncAt(t time.Time) remote.Document {
	return remote.Document{remote.LastSyncAtField: toMillis(t)}
}
