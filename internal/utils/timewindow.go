package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kuldeep27396/prime-backend/internal/models"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ValidWeekday reports whether name is a lowercase English weekday.
func ValidWeekday(name string) bool {
	_, ok := weekdays[strings.ToLower(name)]
	return ok
}

// ParseClock parses an "HH:MM" wall-clock time into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// ValidateAvailability checks every declared window parses and has
// start < end. An empty list is valid (mentor not bookable).
func ValidateAvailability(windows models.Availability) error {
	for i, w := range windows {
		if !ValidWeekday(w.Weekday) {
			return fmt.Errorf("availability[%d]: unknown weekday %q", i, w.Weekday)
		}
		start, err := ParseClock(w.Start)
		if err != nil {
			return fmt.Errorf("availability[%d]: %v", i, err)
		}
		end, err := ParseClock(w.End)
		if err != nil {
			return fmt.Errorf("availability[%d]: %v", i, err)
		}
		if start >= end {
			return fmt.Errorf("availability[%d]: start %s must be before end %s", i, w.Start, w.End)
		}
	}
	return nil
}

// WithinAvailability reports whether the proposed [start, end) window falls
// entirely inside one declared weekly window, evaluated in tz. Windows do
// not compose: a booking spanning two adjacent windows is rejected.
func WithinAvailability(start, end time.Time, windows models.Availability, tz string) (bool, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return false, fmt.Errorf("invalid timezone %q: %v", tz, err)
	}

	localStart := start.In(loc)
	localEnd := end.In(loc)

	// A window never crosses midnight, so neither may the booking.
	if localStart.YearDay() != localEnd.YearDay() || localStart.Year() != localEnd.Year() {
		return false, nil
	}

	startMin := localStart.Hour()*60 + localStart.Minute()
	endMin := localEnd.Hour()*60 + localEnd.Minute()

	for _, w := range windows {
		day, ok := weekdays[strings.ToLower(w.Weekday)]
		if !ok || day != localStart.Weekday() {
			continue
		}
		winStart, err := ParseClock(w.Start)
		if err != nil {
			continue
		}
		winEnd, err := ParseClock(w.End)
		if err != nil {
			continue
		}
		if startMin >= winStart && endMin <= winEnd {
			return true, nil
		}
	}
	return false, nil
}
