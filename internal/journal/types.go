package journal

// #region mood

// Mood is the daily emotional read of the economy.
type Mood string

const (
	MoodStable  Mood = "stable"
	MoodNeutral Mood = "neutral"
	MoodAnxious Mood = "anxious"
)

// AllMoods returns every mood in declaration order.
func AllMoods() []Mood {
	return []Mood{MoodStable, MoodNeutral, MoodAnxious}
}

// DisplayName returns the Korean label.
func (m Mood) DisplayName() string {
	switch m {
	case MoodStable:
		return "안정"
	case MoodNeutral:
		return "중립"
	case MoodAnxious:
		return "불안"
	}
	return string(m)
}

// Emoji returns the picker glyph.
func (m Mood) Emoji() string {
	switch m {
	case MoodStable:
		return "😊"
	case MoodNeutral:
		return "😐"
	case MoodAnxious:
		return "😰"
	}
	return ""
}

// #endregion mood

// #region investment-action

// InvestmentAction is what the user did with their portfolio today.
type InvestmentAction string

const (
	ActionNone  InvestmentAction = "none"
	ActionBuy   InvestmentAction = "buy"
	ActionSell  InvestmentAction = "sell"
	ActionWatch InvestmentAction = "watch"
)

// AllActions returns every action in declaration order.
func AllActions() []InvestmentAction {
	return []InvestmentAction{ActionNone, ActionBuy, ActionSell, ActionWatch}
}

// DisplayName returns the Korean label.
func (a InvestmentAction) DisplayName() string {
	switch a {
	case ActionNone:
		return "없음"
	case ActionBuy:
		return "매수"
	case ActionSell:
		return "매도"
	case ActionWatch:
		return "관망"
	}
	return string(a)
}

// #endregion investment-action

// #region cause

// Cause is the first step of a macro thought.
type Cause string

const (
	CauseInterestRate    Cause = "interest_rate"
	CauseInflation       Cause = "inflation"
	CauseEmployment      Cause = "employment"
	CausePolicy          Cause = "policy"
	CauseGlobalEvent     Cause = "global_event"
	CauseMarketSentiment Cause = "market_sentiment"
)

// AllCauses returns every cause in declaration order.
func AllCauses() []Cause {
	return []Cause{
		CauseInterestRate, CauseInflation, CauseEmployment,
		CausePolicy, CauseGlobalEvent, CauseMarketSentiment,
	}
}

// DisplayName returns the Korean label.
func (c Cause) DisplayName() string {
	switch c {
	case CauseInterestRate:
		return "금리 변화"
	case CauseInflation:
		return "물가 흐름"
	case CauseEmployment:
		return "고용 상황"
	case CausePolicy:
		return "정책 발표"
	case CauseGlobalEvent:
		return "글로벌 이슈"
	case CauseMarketSentiment:
		return "시장 분위기"
	}
	return string(c)
}

// #endregion cause

// #region effect

// Effect is the second step of a macro thought.
type Effect string

const (
	EffectAssetPriceUp        Effect = "asset_price_up"
	EffectAssetPriceDown      Effect = "asset_price_down"
	EffectConsumptionChange   Effect = "consumption_change"
	EffectUncertaintyIncrease Effect = "uncertainty_increase"
	EffectStabilization       Effect = "stabilization"
	EffectNoSignificantChange Effect = "no_significant_change"
)

// AllEffects returns every effect in declaration order.
func AllEffects() []Effect {
	return []Effect{
		EffectAssetPriceUp, EffectAssetPriceDown, EffectConsumptionChange,
		EffectUncertaintyIncrease, EffectStabilization, EffectNoSignificantChange,
	}
}

// DisplayName returns the Korean label.
func (e Effect) DisplayName() string {
	switch e {
	case EffectAssetPriceUp:
		return "자산가격 상승"
	case EffectAssetPriceDown:
		return "자산가격 하락"
	case EffectConsumptionChange:
		return "소비 변화"
	case EffectUncertaintyIncrease:
		return "불확실성 증가"
	case EffectStabilization:
		return "안정화"
	case EffectNoSignificantChange:
		return "큰 변화 없음"
	}
	return string(e)
}

// #endregion effect

// #region conclusion

// Conclusion is the last step of a macro thought.
type Conclusion string

const (
	ConclusionObserveMore    Conclusion = "observe_more"
	ConclusionStayCalm       Conclusion = "stay_calm"
	ConclusionPrepareSlowly  Conclusion = "prepare_slowly"
	ConclusionNoActionNeeded Conclusion = "no_action_needed"
	ConclusionNeedMoreInfo   Conclusion = "need_more_info"
)

// AllConclusions returns every conclusion in declaration order.
func AllConclusions() []Conclusion {
	return []Conclusion{
		ConclusionObserveMore, ConclusionStayCalm, ConclusionPrepareSlowly,
		ConclusionNoActionNeeded, ConclusionNeedMoreInfo,
	}
}

// DisplayName returns the Korean label.
func (c Conclusion) DisplayName() string {
	switch c {
	case ConclusionObserveMore:
		return "좀 더 지켜보기"
	case ConclusionStayCalm:
		return "차분히 유지하기"
	case ConclusionPrepareSlowly:
		return "천천히 준비하기"
	case ConclusionNoActionNeeded:
		return "행동 불필요"
	case ConclusionNeedMoreInfo:
		return "정보 더 필요"
	}
	return string(c)
}

// #endregion conclusion
