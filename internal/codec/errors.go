package codec

import "fmt"

// DecodeError reports a remote document that cannot be turned into a model.
type DecodeError struct {
	Family string
	ID     string
	Field  string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode %s/%s: %v", e.Family, e.ID, e.Err)
	}
	return fmt.Sprintf("decode %s/%s field %q: %v", e.Family, e.ID, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
