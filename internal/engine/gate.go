package engine

import "math"

// Invalid returns the checklist fields that are missing or non-numeric on a
// normalized reading. An empty result means the reading commits; anything
// else routes it to quarantine.
func Invalid(n *Normalized) []string {
	var bad []string
	if n.ReadingTS == nil {
		bad = append(bad, "readingTs")
	}
	numeric := []struct {
		name string
		val  *float64
	}{
		{"condInletTemp", n.CondInletTemp},
		{"condOutletTemp", n.CondOutletTemp},
		{"condRefrigTemp", n.CondRefrigTemp},
		{"condPressure", n.CondPressure},
		{"evapInletTemp", n.EvapInletTemp},
		{"evapOutletTemp", n.EvapOutletTemp},
		{"evapRefrigTemp", n.EvapRefrigTemp},
		{"evapPressure", n.EvapPressure},
		{"ampsPhase1", n.AmpsPhase1},
		{"ampsPhase2", n.AmpsPhase2},
		{"ampsPhase3", n.AmpsPhase3},
		{"voltsPhase1", n.VoltsPhase1},
		{"voltsPhase2", n.VoltsPhase2},
		{"voltsPhase3", n.VoltsPhase3},
		{"percentLoad", n.PercentLoad},
		{"oilPresHigh", n.OilPresHigh},
		{"oilPresLow", n.OilPresLow},
		{"oilPresDif", n.OilPresDif},
		{"bearingTemp", n.BearingTemp},
		{"runHours", n.RunHours},
		{"purgeMinutes", n.PurgeMinutes},
		{"outsideAirTemp", n.OutsideAirTemp},
	}
	for _, f := range numeric {
		if f.val == nil || math.IsNaN(*f.val) {
			bad = append(bad, f.name)
		}
	}
	if n.Notes == nil {
		bad = append(bad, "notes")
	}
	return bad
}
