package rental

import (
	"fmt"
	"math"
	"time"

	"lendhub/internal/domain/article"
	"lendhub/internal/pkg/errs"
)

// Interval is the booked [start, end) range.
type Interval struct {
	start time.Time
	end   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, errs.ErrInvalidInterval
	}
	return Interval{start: start, end: end}, nil
}

func (i Interval) Start() time.Time { return i.start }
func (i Interval) End() time.Time   { return i.end }

func (i Interval) Duration() time.Duration { return i.end.Sub(i.start) }

// Overlaps uses half-open semantics: [s1,e1) and [s2,e2) overlap iff
// s1 < e2 && e1 > s2.
func (i Interval) Overlaps(o Interval) bool {
	return i.start.Before(o.end) && i.end.After(o.start)
}

// UnitsFor converts the interval into billable units, rounding up with a
// floor of one unit. Hourly rentals must align to exact hours.
func UnitsFor(unit article.PriceUnit, iv Interval) (int, error) {
	seconds := iv.Duration().Seconds()

	switch unit {
	case article.PerHour:
		s := iv.Start()
		e := iv.End()
		if s.Minute() != 0 || s.Second() != 0 || s.Nanosecond() != 0 ||
			e.Minute() != 0 || e.Second() != 0 || e.Nanosecond() != 0 {
			return 0, errs.Category(errs.New("hourly rentals must start and end on the hour"), errs.ErrValidation)
		}
		if seconds < 3600 {
			return 0, errs.Category(errs.New("hourly rentals must cover at least one hour"), errs.ErrValidation)
		}
		return int(seconds / 3600), nil
	case article.PerDay:
		return atLeastOne(seconds / 86400), nil
	case article.PerWeek:
		return atLeastOne(seconds / (86400 * 7)), nil
	default:
		return atLeastOne(seconds / 86400), nil
	}
}

func atLeastOne(units float64) int {
	n := int(math.Ceil(units))
	if n < 1 {
		return 1
	}
	return n
}

// Money is an integer amount of cents.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) IsZero() bool { return m.cents == 0 }

func (m Money) IsPositive() bool { return m.cents > 0 }

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Mul(n int) Money {
	return Money{cents: m.cents * int64(n)}
}

func (m Money) Less(other Money) bool { return m.cents < other.cents }

// String renders a two-decimal amount, e.g. "50.00".
func (m Money) String() string {
	sign := ""
	c := m.cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
