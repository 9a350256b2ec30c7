package brief

import (
	"testing"
	"time"

	"github.com/percepta/journal/internal/datekey"
)

func TestTodayUsesCalendarKey(t *testing.T) {
	clock := &datekey.FixedClock{T: time.Date(2026, 4, 1, 23, 50, 0, 0, datekey.DefaultZone)}
	s := NewSource(datekey.NewCalendar(datekey.DefaultZone, clock))

	b := s.Today()
	if b.DateKey != "2026-04-01" {
		t.Errorf("expected 2026-04-01, got %q", b.DateKey)
	}
	if b.ID == "" {
		t.Error("expected id")
	}
	if len(b.Parts()) != len(PartTitles) {
		t.Errorf("expected %d parts, got %d", len(PartTitles), len(b.Parts()))
	}
	for i, p := range b.Parts() {
		if p.Message == "" || p.Why == "" {
			t.Errorf("part %d (%s) incomplete: %+v", i, PartTitles[i], p)
		}
	}
}

func TestSampleOverridesDefault(t *testing.T) {
	sample := Default()
	sample.ID = "fixed"
	sample.DateKey = "2026-04-02"
	sample.Atmosphere.Message = "변동성이 커진 하루였습니다."

	s := NewSource(datekey.NewCalendar(nil, nil), sample)

	if got := s.For("2026-04-02"); got.ID != "fixed" || got.Atmosphere.Message != sample.Atmosphere.Message {
		t.Errorf("expected sample brief, got %+v", got)
	}
	if got := s.For("2026-04-03"); got.Atmosphere.Message != Default().Atmosphere.Message {
		t.Errorf("expected default brief for other days, got %q", got.Atmosphere.Message)
	}
}
