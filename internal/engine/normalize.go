package engine

import (
	"math"
	"time"

	"github.com/plantops/chillerwatch/internal/domain"
)

// Normalized is a reading resolved against its equipment profile: every field
// the unit's modes make irrelevant is forced to zero, purge time is collapsed
// to minutes, and the canonical UTC timestamp is computed. Fields still nil
// after normalization are genuinely missing and fail the validity gate.
type Normalized struct {
	EquipmentID int64
	ActorID     int64
	LogDate     string
	LogTime     string
	Timezone    string
	ReadingTS   *time.Time

	CondInletTemp  *float64
	CondOutletTemp *float64
	CondRefrigTemp *float64
	CondPressure   *float64
	EvapInletTemp  *float64
	EvapOutletTemp *float64
	EvapRefrigTemp *float64
	EvapPressure   *float64

	AmpsPhase1  *float64
	AmpsPhase2  *float64
	AmpsPhase3  *float64
	VoltsPhase1 *float64
	VoltsPhase2 *float64
	VoltsPhase3 *float64
	PercentLoad *float64

	OilPresHigh *float64
	OilPresLow  *float64
	OilPresDif  *float64

	BearingTemp    *float64
	RunHours       *float64
	PurgeMinutes   *float64
	OutsideAirTemp *float64
	Notes          *string
}

func zero() *float64 {
	v := 0.0
	return &v
}

func ptr(v float64) *float64 { return &v }

// nz derefs a maybe-missing value, treating nil and NaN as 0.
func nz(p *float64) float64 {
	if p == nil || math.IsNaN(*p) {
		return 0
	}
	return *p
}

var timeLayouts = []string{"15:04:05", "15:04"}

// CanonicalTS converts a local date, time and IANA timezone into one UTC
// instant. This is the dedup key; nil means the inputs were unparseable.
func CanonicalTS(date, clock, tz string) *time.Time {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil
	}
	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation("2006-01-02 "+layout, date+" "+clock, loc)
		if err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}

// Normalize resolves a raw reading against the equipment profile. The output
// is fully determined by the profile's modes: callers can supply garbage in
// fields the unit does not log and it never reaches the pipeline.
func Normalize(r *domain.Reading, p *domain.EquipmentProfile) Normalized {
	n := Normalized{
		EquipmentID: r.EquipmentID,
		ActorID:     r.ActorID,
		LogDate:     r.LogDate,
		LogTime:     r.LogTime,
		Timezone:    r.Timezone,
		ReadingTS:   CanonicalTS(r.LogDate, r.LogTime, r.Timezone),

		CondInletTemp:  r.CondInletTemp,
		CondOutletTemp: r.CondOutletTemp,
		CondRefrigTemp: r.CondRefrigTemp,
		CondPressure:   r.CondPressure,
		EvapInletTemp:  r.EvapInletTemp,
		EvapOutletTemp: r.EvapOutletTemp,
		EvapRefrigTemp: r.EvapRefrigTemp,
		EvapPressure:   r.EvapPressure,

		AmpsPhase1:  r.AmpsPhase1,
		AmpsPhase2:  r.AmpsPhase2,
		AmpsPhase3:  r.AmpsPhase3,
		VoltsPhase1: r.VoltsPhase1,
		VoltsPhase2: r.VoltsPhase2,
		VoltsPhase3: r.VoltsPhase3,
		PercentLoad: r.PercentLoad,

		OilPresHigh: r.OilPresHigh,
		OilPresLow:  r.OilPresLow,
		OilPresDif:  r.OilPresDif,

		BearingTemp:    r.BearingTemp,
		RunHours:       r.RunHours,
		OutsideAirTemp: r.OutsideAirTemp,
		Notes:          r.Notes,
	}

	switch p.WiringMode {
	case domain.WiringSinglePhase:
		n.AmpsPhase2, n.AmpsPhase3 = zero(), zero()
		n.VoltsPhase2, n.VoltsPhase3 = zero(), zero()
		n.PercentLoad = zero()
	case domain.WiringThreePhase:
		n.PercentLoad = zero()
	case domain.WiringPercentLoad:
		n.AmpsPhase1, n.AmpsPhase2, n.AmpsPhase3 = zero(), zero(), zero()
		n.VoltsPhase1, n.VoltsPhase2, n.VoltsPhase3 = zero(), zero(), zero()
	case domain.WiringNoVoltage:
		n.VoltsPhase1, n.VoltsPhase2, n.VoltsPhase3 = zero(), zero(), zero()
		n.PercentLoad = zero()
	}

	switch p.OilMode {
	case domain.OilHighLow:
		n.OilPresDif = zero()
	case domain.OilHighOnly:
		n.OilPresLow, n.OilPresDif = zero(), zero()
	case domain.OilDifferential:
		n.OilPresHigh, n.OilPresLow = zero(), zero()
	case domain.OilNotLogged:
		n.OilPresHigh, n.OilPresLow, n.OilPresDif = zero(), zero(), zero()
	}

	if !p.BearingTempFitted {
		n.BearingTemp = zero()
	}

	// High-pressure refrigerants have no measured condenser refrigerant
	// temperature; the engine substitutes the table-derived one.
	if p.HighPressureRefrig {
		n.CondRefrigTemp = zero()
	}

	switch p.PurgeMode {
	case domain.PurgeMinutesOnly:
		n.PurgeMinutes = r.PurgeTimeMin
	case domain.PurgeHoursMinutes:
		n.PurgeMinutes = ptr(nz(r.PurgeTimeHr)*60 + nz(r.PurgeTimeMin))
	case domain.PurgeNone:
		n.PurgeMinutes = zero()
	}

	if p.RunHoursMode == domain.RunHoursNotLogged {
		n.RunHours = zero()
	}

	return n
}
