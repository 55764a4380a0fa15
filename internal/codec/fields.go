package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/aquatrack/hydrosync/internal/remote"
)

var (
	errMissing   = errors.New("field is missing")
	errWrongType = errors.New("unexpected type")
)

// reader pulls typed fields out of a document and remembers the first error.
type reader struct {
	family string
	id     string
	doc    remote.Document
	err    error
}

func newReader(family, id string, doc remote.Document) *reader {
	return &reader{family: family, id: id, doc: doc}
}

func (r *reader) fail(field string, err error) {
	if r.err == nil {
		r.err = &DecodeError{Family: r.family, ID: r.id, Field: field, Err: err}
	}
}

func (r *reader) value(field string, required bool) (any, bool) {
	v, ok := r.doc[field]
	if !ok || v == nil {
		if required {
			r.fail(field, errMissing)
		}
		return nil, false
	}
	return v, true
}

func (r *reader) int64(field string, required bool) int64 {
	v, ok := r.value(field, required)
	if !ok {
		return 0
	}
	n, err := toInt64(v)
	if err != nil {
		r.fail(field, err)
	}
	return n
}

func (r *reader) int(field string, required bool) int {
	return int(r.int64(field, required))
}

func (r *reader) string(field string, required bool) string {
	v, ok := r.value(field, required)
	if !ok {
		return ""
	}
	s, isString := v.(string)
	if !isString {
		r.fail(field, fmt.Errorf("%w: want string, got %T", errWrongType, v))
	}
	return s
}

func (r *reader) bool(field string) bool {
	v, ok := r.value(field, false)
	if !ok {
		return false
	}
	b, isBool := v.(bool)
	if !isBool {
		r.fail(field, fmt.Errorf("%w: want bool, got %T", errWrongType, v))
	}
	return b
}

func (r *reader) time(field string, required bool) time.Time {
	v, ok := r.value(field, required)
	if !ok {
		return time.Time{}
	}
	ms, err := toInt64(v)
	if err != nil {
		r.fail(field, err)
		return time.Time{}
	}
	return fromMillis(ms)
}

func (r *reader) optionalTime(field string) *time.Time {
	if _, ok := r.value(field, false); !ok {
		return nil
	}
	t := r.time(field, false)
	return &t
}

func (r *reader) timeList(field string) []time.Time {
	v, ok := r.value(field, false)
	if !ok {
		return nil
	}
	list, isList := v.([]any)
	if !isList {
		r.fail(field, fmt.Errorf("%w: want list, got %T", errWrongType, v))
		return nil
	}
	out := make([]time.Time, 0, len(list))
	for i, item := range list {
		ms, err := toInt64(item)
		if err != nil {
			r.fail(fmt.Sprintf("%s[%d]", field, i), err)
			return nil
		}
		out = append(out, fromMillis(ms))
	}
	return out
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, fmt.Errorf("%w: %v is not an integer", errWrongType, n)
		}
		// float64(math.MaxInt64) rounds up to 2^63, so the upper bound is exclusive
		if n >= 1<<63 || n < -(1<<63) {
			return 0, fmt.Errorf("%w: %v overflows int64", errWrongType, n)
		}
		return int64(n), nil
	case json.Number:
		return strconv.ParseInt(string(n), 10, 64)
	default:
		return 0, fmt.Errorf("%w: want number, got %T", errWrongType, v)
	}
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func millisList(ts []time.Time) []any {
	out := make([]any, len(ts))
	for i, t := range ts {
		out[i] = toMillis(t)
	}
	return out
}
