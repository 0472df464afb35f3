// backend-go/internal/expiry/classify.go
package expiry

import (
	"errors"
	"fmt"
	"time"
)

// Bucket is the urgency classification of an expiry date relative to a
// reference date.
type Bucket string

const (
	BucketCritical Bucket = "critical"
	BucketWarning  Bucket = "warning"
	BucketNormal   Bucket = "normal"
)

// ErrInvalidDate is returned when a date string does not parse as a
// calendar date. Callers skip or flag the offending entry instead of
// letting a bad record poison a whole render pass.
var ErrInvalidDate = errors.New("invalid date")

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date. No time component, no
// timezone normalization.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// MonthsUntil returns the whole calendar-month difference between the
// expiry date and the reference date. Day-of-month is ignored: an expiry
// on the 1st and the 28th of the same month are the same distance away.
func MonthsUntil(expiryDate, referenceDate string) (int, error) {
	exp, err := ParseDate(expiryDate)
	if err != nil {
		return 0, err
	}
	ref, err := ParseDate(referenceDate)
	if err != nil {
		return 0, err
	}
	return (exp.Year()-ref.Year())*12 + int(exp.Month()) - int(ref.Month()), nil
}

// Classify buckets an expiry date: anything up to one month out (including
// dates already past) is critical, two months out is warning, everything
// beyond is normal.
func Classify(expiryDate, referenceDate string) (Bucket, error) {
	m, err := MonthsUntil(expiryDate, referenceDate)
	if err != nil {
		return "", err
	}
	switch {
	case m <= 1:
		return BucketCritical, nil
	case m <= 2:
		return BucketWarning, nil
	default:
		return BucketNormal, nil
	}
}
