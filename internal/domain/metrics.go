package domain

// MetricValue resolves an alert-rule metric name against a committed log.
// The second return is false when the name is unknown, which callers treat
// as "skip the rule".
func MetricValue(l *ComputedLog, name string) (float64, bool) {
	switch name {
	case "effLoss":
		return l.TotalLoss, true
	case "otherLoss":
		return l.OtherLoss, true
	case "inletLoss":
		return l.InletLoss, true
	case "condApproachLoss":
		return l.CondApproachLoss, true
	case "evapTempLoss":
		return l.EvapTempLoss, true
	case "evapApproachLoss":
		return l.EvapApproachLoss, true
	case "nonCondLoss":
		return l.NonCondLoss, true
	case "deltaLoss":
		return l.DeltaLoss, true
	case "condApproach":
		return l.CondApproach, true
	case "evapApproach":
		return l.EvapApproach, true
	case "loadFactor":
		return l.LoadFactor, true
	case "lossCost":
		return l.LossCost, true
	case "actualCost":
		return l.ActualCost, true
	case "ampsImbalance":
		return l.AmpsImbalance, true
	case "voltsImbalance":
		return l.VoltsImbalance, true
	case "finalOilDif":
		return l.FinalOilDif, true
	case "nonCondensables":
		return l.NonCondensables, true
	case "bearingTemp":
		return l.BearingTemp, true
	case "purgeMinutes":
		return l.PurgeMinutes, true
	case "kwhLoss":
		return l.KWHLoss, true
	case "co2Loss":
		return l.CO2Loss, true
	case "outsideAirTemp":
		return l.OutsideAirTemp, true
	}
	return 0, false
}
