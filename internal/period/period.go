// Package period buckets timestamps into named parts of the day.
package period

import (
	"fmt"
	"time"
)

type Theme string

const (
	ThemeDay   Theme = "day"
	ThemeNight Theme = "night"
)

type Period struct {
	Name  string
	Start int // inclusive hour
	End   int // exclusive hour, 24 for the late night range
	Theme Theme
}

// Table partitions the 24 hours of a day. Night appears twice because it
// wraps around midnight.
var Table = []Period{
	{Name: "nuit", Start: 22, End: 24, Theme: ThemeNight},
	{Name: "nuit", Start: 0, End: 5, Theme: ThemeNight},
	{Name: "matin", Start: 5, End: 12, Theme: ThemeDay},
	{Name: "après-midi", Start: 12, End: 17, Theme: ThemeDay},
	{Name: "soir", Start: 17, End: 22, Theme: ThemeNight},
}

// fallback is used only if Table stops covering every hour.
var fallback = Table[2]

func ForHour(hour int) Period {
	for _, p := range Table {
		if p.Start <= hour && hour < p.End {
			return p
		}
	}
	return fallback
}

func For(t time.Time) Period {
	return ForHour(t.Hour())
}

// Key identifies a visual group: one calendar day and one period name.
type Key struct {
	Day    string // YYYY-MM-DD
	Period string
}

func KeyFor(t time.Time) Key {
	return Key{Day: t.Format("2006-01-02"), Period: For(t).Name}
}

func (k Key) String() string {
	return k.Day + "-" + k.Period
}

var (
	weekdaysFR = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}
	monthsFR   = [...]string{
		"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre",
	}
)

// FormatDateFR renders t as "samedi 24 décembre 2023".
func FormatDateFR(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d", weekdaysFR[t.Weekday()], t.Day(), monthsFR[t.Month()-1], t.Year())
}

// Header is the group label: the French date followed by the period name.
func Header(t time.Time) string {
	return FormatDateFR(t) + " — " + For(t).Name
}
