package feed

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ISOFormat is the UTC timestamp layout used for sitemap lastmod values.
const ISOFormat = "2006-01-02T15:04:05.000Z"

// DateError reports a post whose published value could not be parsed.
type DateError struct {
	Slug  string
	Value string
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("post %q: invalid published date %q: %v", e.Slug, e.Value, e.Err)
}

func (e *DateError) Unwrap() error { return e.Err }

var errEmptyDate = errors.New("empty date")

// ParseDate parses a post's published value. Values without a zone are
// taken as UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errEmptyDate
	}
	return dateparse.ParseIn(value, time.UTC)
}

func publishedTime(p Post) (time.Time, error) {
	t, err := ParseDate(p.Published)
	if err != nil {
		return time.Time{}, &DateError{Slug: p.Slug, Value: p.Published, Err: err}
	}
	return t.UTC(), nil
}

// ISODate normalizes a published value to ISOFormat.
func ISODate(p Post) (string, error) {
	t, err := publishedTime(p)
	if err != nil {
		return "", err
	}
	return t.Format(ISOFormat), nil
}
