package parse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// DetectDateOrder decides whether the numeric dates of a file are day-first
// or month-first. Each date whose first or second part is above 12 casts a
// vote; ties go to MDY only when a 12-hour header was seen.
func DetectDateOrder(ev Evidence) DateOrder {
	dmy, mdy := 0, 0
	for _, d := range ev.Dates {
		parts := strings.Split(d, "/")
		if len(parts) < 2 {
			continue
		}
		a, errA := strconv.Atoi(parts[0])
		b, errB := strconv.Atoi(parts[1])
		if errA != nil || errB != nil {
			continue
		}
		switch {
		case a > 12 && b <= 12:
			dmy++
		case b > 12 && a <= 12:
			mdy++
		}
	}
	switch {
	case mdy > dmy:
		return MDY
	case dmy > mdy:
		return DMY
	case ev.TwelveHour:
		return MDY
	default:
		return DMY
	}
}

var meridiemRe = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})(?::(\d{2}))?[\s\p{Zs}]*(AM|PM)$`)

// parseClock returns hour, minute, second for "HH:MM[:SS]" or "H:MM[:SS] AM/PM".
func parseClock(s string) (int, int, int, error) {
	s = strings.TrimSpace(s)
	if m := meridiemRe.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		second := 0
		if m[3] != "" {
			second, _ = strconv.Atoi(m[3])
		}
		pm := strings.EqualFold(m[4], "PM")
		if pm && hour < 12 {
			hour += 12
		}
		if !pm && hour == 12 {
			hour = 0
		}
		return hour, minute, second, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, 0, 0, fmt.Errorf("%w: time %q", ErrInvalidTimestamp, s)
	}
	vals := make([]int, 3)
	for i := 0; i < len(parts) && i < 3; i++ {
		v, err := strconv.Atoi(parts[i])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: time %q", ErrInvalidTimestamp, s)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], nil
}

// expandYear maps two-digit years onto a century: 70-99 are 19xx, the rest 20xx.
func expandYear(y int) int {
	if y >= 100 {
		return y
	}
	if y >= 70 {
		return 1900 + y
	}
	return 2000 + y
}

// ResolveTimestamp turns verbatim date and time tokens into a wall-clock time
// using the file's date order. When the chosen order yields a month outside
// 1..12 the day-first reading is used instead. The result carries the
// verbatim wall clock in UTC.
func ResolveTimestamp(date, clock string, order DateOrder) (time.Time, error) {
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidTimestamp, date)
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidTimestamp, date)
		}
		n[i] = v
	}

	day, month := n[0], n[1]
	if order == MDY {
		day, month = n[1], n[0]
	}
	if month < 1 || month > 12 {
		day, month = n[0], n[1]
	}
	year := expandYear(n[2])

	hour, minute, second, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	if month < 1 || month > 12 || day < 1 || day > daysIn(year, month) ||
		hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, fmt.Errorf("%w: %s %s", ErrInvalidTimestamp, date, clock)
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC), nil
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
