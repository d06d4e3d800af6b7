package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date range forms accepted on the command line. Day/month is the order the
// schedule itself uses, so "15/1" is the 15th of January.
var (
	isoSingleRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	isoRangeRe  = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s*-\s*(\d{4}-\d{2}-\d{2})$`)
	dmSingleRe  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})$`)
	dmRangeRe   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})\s*-\s*(\d{1,2})/(\d{1,2})$`)
)

// ParseDateRange parses a date or date range into an inclusive window.
//
// Supported forms:
//   - "2026-01-15" - a single day
//   - "2026-01-15 - 2026-01-31" - an explicit range
//   - "15/1" - day/month, year inferred
//   - "15/1-31/1" - day/month range, years inferred
//
// Year inference follows the schedule's season logic: a month that has
// already passed this year means next year, and a range whose end month
// precedes its start month crosses New Year ("29/12-2/1").
//
// Returns (from, to, error). The window starts at 00:00:00 and ends at
// 23:59:59 so a single day covers its whole evening of broadcasts.
func ParseDateRange(input string) (*time.Time, *time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, fmt.Errorf("date range cannot be empty")
	}

	if m := isoRangeRe.FindStringSubmatch(input); m != nil {
		from, err := time.Parse("2006-01-02", m[1])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date: %s", m[1])
		}
		to, err := time.Parse("2006-01-02", m[2])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date: %s", m[2])
		}
		return window(from, to)
	}

	if m := isoSingleRe.FindStringSubmatch(input); m != nil {
		day, err := time.Parse("2006-01-02", input)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date: %s", input)
		}
		return window(day, day)
	}

	if m := dmRangeRe.FindStringSubmatch(input); m != nil {
		day1, month1, err := dayMonth(m[1], m[2])
		if err != nil {
			return nil, nil, err
		}
		day2, month2, err := dayMonth(m[3], m[4])
		if err != nil {
			return nil, nil, err
		}

		year1 := yearFor(month1)
		year2 := year1
		// End month before start month means the range crosses New Year.
		if month2 < month1 {
			year2++
		}

		from := time.Date(year1, month1, day1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year2, month2, day2, 0, 0, 0, 0, time.UTC)
		return window(from, to)
	}

	if m := dmSingleRe.FindStringSubmatch(input); m != nil {
		day, month, err := dayMonth(m[1], m[2])
		if err != nil {
			return nil, nil, err
		}
		d := time.Date(yearFor(month), month, day, 0, 0, 0, 0, time.UTC)
		return window(d, d)
	}

	return nil, nil, fmt.Errorf("invalid date range %q (use '15/1', '15/1-31/1' or '2026-01-15')", input)
}

// window widens [from, to] to full days and rejects inverted ranges.
func window(from, to time.Time) (*time.Time, *time.Time, error) {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, time.UTC)
	if start.After(end) {
		return nil, nil, fmt.Errorf("start date must be before end date")
	}
	return &start, &end, nil
}

func dayMonth(dayStr, monthStr string) (int, time.Month, error) {
	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > 31 {
		return 0, 0, fmt.Errorf("invalid day: %s", dayStr)
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month: %s", monthStr)
	}
	return day, time.Month(month), nil
}

// yearFor returns the year a bare month most plausibly refers to. A month
// that has already passed is next year's.
func yearFor(month time.Month) int {
	now := time.Now()
	year := now.Year()
	if month < now.Month() {
		year++
	}
	return year
}
