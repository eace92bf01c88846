package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Stored date/time layouts.
const (
	DateLayout = "060102" // YYMMDD
	TimeLayout = "1504"   // HHMM
)

// WindowKind tells the store which predicate shape a TimeWindow describes.
type WindowKind int

const (
	// WindowAll matches every record.
	WindowAll WindowKind = iota
	// WindowSince matches records at or after a threshold:
	// date > SinceDate OR (date == SinceDate AND time >= SinceTime).
	WindowSince
	// WindowExact matches an exact date and/or an hour window [TimeFrom, TimeTo].
	WindowExact
)

// TimeWindow is a predicate description over the stored date/time strings.
// It is built per request and never persisted.
type TimeWindow struct {
	Kind WindowKind

	SinceDate string
	SinceTime string

	Date     string // empty means any date
	TimeFrom string // empty means any time
	TimeTo   string
}

// Matches evaluates the window against a stored date and time. Stores that
// push the predicate down must agree with this.
func (w TimeWindow) Matches(date, hhmm string) bool {
	switch w.Kind {
	case WindowSince:
		return date > w.SinceDate || (date == w.SinceDate && hhmm >= w.SinceTime)
	case WindowExact:
		if w.Date != "" && date != w.Date {
			return false
		}
		if w.TimeFrom != "" && (hhmm < w.TimeFrom || hhmm > w.TimeTo) {
			return false
		}
		return true
	default:
		return true
	}
}

func (w TimeWindow) String() string {
	switch w.Kind {
	case WindowSince:
		return fmt.Sprintf("since %s %s", w.SinceDate, w.SinceTime)
	case WindowExact:
		return fmt.Sprintf("exact date=%q time=[%s,%s]", w.Date, w.TimeFrom, w.TimeTo)
	default:
		return "all"
	}
}

// ParseError reports request input that could not be turned into a window.
// Callers log it and query without that filter.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// WindowRequest carries the raw time selection of a feed request. An explicit
// Date or Time takes precedence over LastInterval.
type WindowRequest struct {
	LastInterval string
	Date         string
	Time         string
}

// BuildWindow converts a request into a TimeWindow. The returned window is
// always usable; a non-nil error lists the inputs that were dropped.
func BuildWindow(req WindowRequest) (TimeWindow, error) {
	if present(req.Date) || present(req.Time) {
		return ExactWindow(req.Date, req.Time)
	}
	return IntervalWindow(req.LastInterval)
}

// IntervalWindow selects spots from the last N minutes, measured on the
// package clock in UTC. An empty interval selects everything.
func IntervalWindow(lastInterval string) (TimeWindow, error) {
	s := strings.TrimSpace(lastInterval)
	if s == "" {
		return TimeWindow{}, nil
	}
	minutes, err := strconv.Atoi(s)
	if err != nil {
		return TimeWindow{}, &ParseError{Field: "lastInterval", Value: lastInterval, Err: err}
	}
	if minutes < 0 {
		return TimeWindow{}, &ParseError{Field: "lastInterval", Value: lastInterval, Err: errors.New("must not be negative")}
	}
	return SinceWindow(clock.Now(), minutes), nil
}

// centuryStart is the earliest instant a two-digit YYMMDD year can name.
var centuryStart = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// SinceWindow encodes now-minutes in the stored YYMMDD/HHMM format. A
// threshold before 2000-01-01 would encode as a "9xxxxx" date that sorts
// after every stored date, so lookbacks reaching that far select everything.
func SinceWindow(now time.Time, minutes int) TimeWindow {
	now = now.UTC()
	if int64(minutes) > int64(now.Sub(centuryStart)/time.Minute) {
		return TimeWindow{}
	}
	threshold := now.Add(-time.Duration(minutes) * time.Minute)
	return TimeWindow{
		Kind:      WindowSince,
		SinceDate: threshold.Format(DateLayout),
		SinceTime: threshold.Format(TimeLayout),
	}
}

// ExactWindow matches an exact YYMMDD date and/or the hour named by the first
// two characters of hhmm ("14" or "1430" -> [1400, 1459]). "null" is treated
// as absent, as the legacy endpoint sends it.
func ExactWindow(date, hhmm string) (TimeWindow, error) {
	w := TimeWindow{Kind: WindowExact}
	var errs []error

	if present(date) {
		d := strings.TrimSpace(date)
		if digits(d) && len(d) == 6 {
			w.Date = d
		} else {
			errs = append(errs, &ParseError{Field: "date", Value: date, Err: errors.New("want YYMMDD")})
		}
	}

	if present(hhmm) {
		t := strings.TrimSpace(hhmm)
		if len(t) >= 2 && digits(t[:2]) && t[:2] <= "23" {
			w.TimeFrom = t[:2] + "00"
			w.TimeTo = t[:2] + "59"
		} else {
			errs = append(errs, &ParseError{Field: "time", Value: hhmm, Err: errors.New("want HH or HHMM")})
		}
	}

	if w.Date == "" && w.TimeFrom == "" {
		w = TimeWindow{}
	}
	return w, errors.Join(errs...)
}

func present(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != "null"
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
