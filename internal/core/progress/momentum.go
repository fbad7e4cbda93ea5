package progress

// Momentum trends.
const (
	TrendSteady = "steady"
	TrendUp     = "up"
	TrendDown   = "down"
	TrendNew    = "new"
)

// steadyBand is the delta magnitude below which the trend reads as steady.
const steadyBand = 1.5

// CompareMomentum classifies the completion trend between the current and
// previous period breakdowns. With no previous baseline the trend is "new"
// and the delta is nil.
func CompareMomentum(current, previous CompletionBreakdown) Momentum {
	m := Momentum{
		CurrentRate:  current.SuccessRate,
		PreviousRate: previous.SuccessRate,
	}

	if previous.Total == 0 {
		m.Trend = TrendNew
		return m
	}

	var cur float64
	if current.SuccessRate != nil {
		cur = *current.SuccessRate
	}
	delta := round1(cur - *previous.SuccessRate)
	m.Delta = &delta

	switch {
	case delta < steadyBand && delta > -steadyBand:
		m.Trend = TrendSteady
	case delta > 0:
		m.Trend = TrendUp
	default:
		m.Trend = TrendDown
	}
	return m
}
