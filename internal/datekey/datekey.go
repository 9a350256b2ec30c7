package datekey

import (
	"fmt"
	"strings"
	"time"
)

// #region types

// Layout is the canonical calendar-day format.
const Layout = "2006-01-02"

// Key identifies one calendar day in the configured zone, formatted YYYY-MM-DD.
// Lexicographic order equals chronological order.
type Key string

// String returns the raw key.
func (k Key) String() string { return string(k) }

// Dated is implemented by every record that is keyed by calendar day.
type Dated interface {
	Day() Key
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant. Set moves it.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c *FixedClock) Now() time.Time { return c.T }

// Set replaces the fixed instant.
func (c *FixedClock) Set(t time.Time) { c.T = t }

// Advance moves the fixed instant forward by d.
func (c *FixedClock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// #endregion types

// #region zone

// DefaultZone is UTC+9, the zone every key is computed in unless configured otherwise.
var DefaultZone = time.FixedZone("KST", 9*60*60)

// LoadZone resolves a zone name. Accepts "" (DefaultZone), an IANA name such as
// "Asia/Seoul", "UTC", or a fixed offset like "+09:00" / "-05:30".
func LoadZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultZone, nil
	}
	if name[0] == '+' || name[0] == '-' {
		t, err := time.Parse("-07:00", name)
		if err != nil {
			return nil, fmt.Errorf("parse zone offset %q: %w", name, err)
		}
		_, offset := t.Zone()
		return time.FixedZone("UTC"+name, offset), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load zone %q: %w", name, err)
	}
	return loc, nil
}

// #endregion zone

// #region calendar

// Calendar computes day keys in a single zone against an injectable clock.
type Calendar struct {
	loc   *time.Location
	clock Clock
}

// NewCalendar returns a calendar for loc. Nil loc means DefaultZone, nil clock means SystemClock.
func NewCalendar(loc *time.Location, clock Clock) *Calendar {
	if loc == nil {
		loc = DefaultZone
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Calendar{loc: loc, clock: clock}
}

// Location returns the zone keys are computed in.
func (c *Calendar) Location() *time.Location { return c.loc }

// Now returns the clock's current instant in the calendar zone.
func (c *Calendar) Now() time.Time { return c.clock.Now().In(c.loc) }

// For returns the key of the calendar day containing t.
func (c *Calendar) For(t time.Time) Key {
	return Key(t.In(c.loc).Format(Layout))
}

// Today returns the key for the clock's current instant.
func (c *Calendar) Today() Key { return c.For(c.clock.Now()) }

// Yesterday returns the key of the day before Today.
func (c *Calendar) Yesterday() Key {
	k, _ := c.AddDays(c.Today(), -1)
	return k
}

// Parse validates s as a key.
func (c *Calendar) Parse(s string) (Key, error) {
	if _, err := time.ParseInLocation(Layout, s, c.loc); err != nil {
		return "", fmt.Errorf("parse date key %q: %w", s, err)
	}
	return Key(s), nil
}

// StartOfDay returns the first instant of k in the calendar zone.
func (c *Calendar) StartOfDay(k Key) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, string(k), c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", k, err)
	}
	return t, nil
}

// AddDays shifts k by n calendar days. Works on calendar dates, so DST
// transitions in an IANA zone never skip or repeat a key.
func (c *Calendar) AddDays(k Key, n int) (Key, error) {
	start, err := c.StartOfDay(k)
	if err != nil {
		return "", err
	}
	y, m, d := start.Date()
	return Key(time.Date(y, m, d+n, 12, 0, 0, 0, c.loc).Format(Layout)), nil
}

// LastDays returns the n keys ending today, newest first.
func (c *Calendar) LastDays(n int) []Key {
	today := c.Today()
	keys := make([]Key, 0, n)
	for i := 0; i < n; i++ {
		k, _ := c.AddDays(today, -i)
		keys = append(keys, k)
	}
	return keys
}

// #endregion calendar

// #region display

// Display renders k for people: "오늘", "어제", otherwise "M월 d일".
// An unparseable key is returned verbatim.
func (c *Calendar) Display(k Key) string {
	switch k {
	case c.Today():
		return "오늘"
	case c.Yesterday():
		return "어제"
	}
	t, err := c.StartOfDay(k)
	if err != nil {
		return string(k)
	}
	return fmt.Sprintf("%d월 %d일", int(t.Month()), t.Day())
}

// IsDaytimeSlot reports whether the local time is within [08:30, 22:30).
func (c *Calendar) IsDaytimeSlot() bool {
	now := c.Now()
	minutes := now.Hour()*60 + now.Minute()
	return minutes >= 8*60+30 && minutes < 22*60+30
}

// #endregion display
