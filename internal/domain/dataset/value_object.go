package dataset

import (
	"fmt"
	"time"
)

// DateLayout is the ISO-8601 calendar date used for every persisted date.
const DateLayout = "2006-01-02"

// OrderStatus labels the lifecycle stage of a generated order.
type OrderStatus string

const (
	StatusCompleted  OrderStatus = "completed"
	StatusShipped    OrderStatus = "shipped"
	StatusProcessing OrderStatus = "processing"
)

// Range is an inclusive integer interval [Low, High].
type Range struct {
	Low  int
	High int
}

func NewRange(low, high int) (Range, error) {
	r := Range{Low: low, High: high}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

func (r Range) Validate() error {
	if r.Low < 1 {
		return fmt.Errorf("%w: range low must be >= 1, got %d", ErrInvalidConfig, r.Low)
	}
	if r.High < r.Low {
		return fmt.Errorf("%w: range high %d is below low %d", ErrInvalidConfig, r.High, r.Low)
	}
	return nil
}

func (r Range) Contains(n int) bool {
	return n >= r.Low && n <= r.High
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Low, r.High)
}

// DateWindow covers Start through Start+SpanDays, both ends included.
type DateWindow struct {
	Start    time.Time
	SpanDays int
}

func (w DateWindow) Validate() error {
	if w.Start.IsZero() {
		return fmt.Errorf("%w: date window start is not set", ErrInvalidConfig)
	}
	if w.SpanDays < 0 {
		return fmt.Errorf("%w: date window span must be >= 0, got %d", ErrInvalidConfig, w.SpanDays)
	}
	return nil
}

// Day returns the formatted date offset days after Start.
func (w DateWindow) Day(offset int) string {
	return FormatDate(w.Start.AddDate(0, 0, offset))
}

func (w DateWindow) End() time.Time {
	return w.Start.AddDate(0, 0, w.SpanDays)
}

// Contains reports whether a YYYY-MM-DD string falls inside the window.
func (w DateWindow) Contains(date string) bool {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	start := FormatDate(w.Start)
	end := FormatDate(w.End())
	s := FormatDate(d)
	return s >= start && s <= end
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MustDate parses a YYYY-MM-DD literal and panics on malformed input.
// Only used for compile-time defaults.
func MustDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}
