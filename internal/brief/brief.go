package brief

import (
	"github.com/google/uuid"

	"github.com/percepta/journal/internal/datekey"
)

// #region types

// Part is one section of the brief: a short message and the reason behind it.
type Part struct {
	Message string `json:"message"`
	Why     string `json:"why"`
}

// Brief is the daily five-part macro narrative.
type Brief struct {
	ID            string      `json:"id"`
	DateKey       datekey.Key `json:"dateKey"`
	Atmosphere    Part        `json:"atmosphere"`
	Caution       Part        `json:"caution"`
	Normalization Part        `json:"normalization"`
	Permission    Part        `json:"permission"`
	Relief        Part        `json:"relief"`
}

// Day implements datekey.Dated.
func (b Brief) Day() datekey.Key { return b.DateKey }

// Parts returns the five parts in display order.
func (b Brief) Parts() []Part {
	return []Part{b.Atmosphere, b.Caution, b.Normalization, b.Permission, b.Relief}
}

// PartTitles are the section headings matching Parts.
var PartTitles = []string{"지금의 분위기", "조심할 한 가지", "불안은 자연스러운 것", "오늘은 쉬어도 괜찮아요", "뉴스에서 한 걸음"}

// #endregion types

// #region source

// Source serves the brief for a calendar day.
type Source struct {
	cal     *datekey.Calendar
	samples map[datekey.Key]Brief
}

// NewSource serves samples by date key and the default brief for any other day.
func NewSource(cal *datekey.Calendar, samples ...Brief) *Source {
	s := &Source{cal: cal, samples: make(map[datekey.Key]Brief, len(samples))}
	for _, b := range samples {
		s.samples[b.DateKey] = b
	}
	return s
}

// Today returns today's brief.
func (s *Source) Today() Brief {
	return s.For(s.cal.Today())
}

// For returns the brief for day.
func (s *Source) For(day datekey.Key) Brief {
	if b, ok := s.samples[day]; ok {
		return b
	}
	b := Default()
	b.ID = uuid.New().String()
	b.DateKey = day
	return b
}

// Default is the brief shown when no day-specific brief exists.
func Default() Brief {
	return Brief{
		Atmosphere: Part{
			Message: "시장은 조용한 흐름을 유지하고 있습니다.",
			Why:     "큰 이벤트 없이 기존 추세가 이어지고 있습니다.",
		},
		Caution: Part{
			Message: "다만, 금리 방향에 대한 불확실성은 남아있습니다.",
			Why:     "중앙은행의 다음 결정을 예측하기 어렵습니다.",
		},
		Normalization: Part{
			Message: "불안함을 느끼는 것은 자연스러운 반응입니다.",
			Why:     "누구나 불확실성 앞에서 걱정하게 됩니다.",
		},
		Permission: Part{
			Message: "오늘 아무것도 하지 않아도 괜찮습니다.",
			Why:     "관망도 현명한 선택입니다.",
		},
		Relief: Part{
			Message: "뉴스는 많지만, 지금 당장 반응할 필요는 없습니다.",
			Why:     "대부분의 뉴스는 장기적으로 큰 영향을 주지 않습니다.",
		},
	}
}

// #endregion source
