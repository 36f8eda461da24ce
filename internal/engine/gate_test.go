package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plantops/chillerwatch/internal/domain"
)

// completeReading supplies every checklist field for a three-phase,
// high/low-oil unit with a bearing sensor.
func completeReading() *domain.Reading {
	return &domain.Reading{
		EquipmentID: 7, ActorID: 1,
		LogDate: "2024-06-01", LogTime: "14:30", Timezone: "America/Chicago",

		CondInletTemp: f(85), CondOutletTemp: f(95), CondRefrigTemp: f(97), CondPressure: f(105),
		EvapInletTemp: f(54), EvapOutletTemp: f(44), EvapRefrigTemp: f(40), EvapPressure: f(33),

		AmpsPhase1: f(150), AmpsPhase2: f(160), AmpsPhase3: f(170),
		VoltsPhase1: f(460), VoltsPhase2: f(462), VoltsPhase3: f(458),

		OilPresHigh: f(55), OilPresLow: f(22),
		BearingTemp: f(140), RunHours: f(1200),
		PurgeTimeHr: f(0), PurgeTimeMin: f(5),
		OutsideAirTemp: f(88), Notes: str("routine"),
	}
}

func gateProfile() *domain.EquipmentProfile {
	return &domain.EquipmentProfile{
		WiringMode:        domain.WiringThreePhase,
		OilMode:           domain.OilHighLow,
		PurgeMode:         domain.PurgeHoursMinutes,
		RunHoursMode:      domain.RunHoursTotal,
		BearingTempFitted: true,
	}
}

func TestGateCompleteReadingPasses(t *testing.T) {
	n := Normalize(completeReading(), gateProfile())
	assert.Empty(t, Invalid(&n))
}

func TestGateMissingOutsideAirTemp(t *testing.T) {
	r := completeReading()
	r.OutsideAirTemp = nil
	n := Normalize(r, gateProfile())
	assert.Equal(t, []string{"outsideAirTemp"}, Invalid(&n))
}

func TestGateNaNIsInvalid(t *testing.T) {
	r := completeReading()
	r.CondPressure = f(math.NaN())
	n := Normalize(r, gateProfile())
	assert.Equal(t, []string{"condPressure"}, Invalid(&n))
}

func TestGateBadTimestamp(t *testing.T) {
	r := completeReading()
	r.Timezone = "Not/AZone"
	n := Normalize(r, gateProfile())
	assert.Contains(t, Invalid(&n), "readingTs")
}

func TestGateMissingNotes(t *testing.T) {
	r := completeReading()
	r.Notes = nil
	n := Normalize(r, gateProfile())
	assert.Equal(t, []string{"notes"}, Invalid(&n))
}

func TestGateModeIrrelevantFieldsNeverFail(t *testing.T) {
	// A percent-load, no-oil, no-purge unit without a bearing sensor needs
	// only the fields it actually logs.
	p := &domain.EquipmentProfile{
		WiringMode:   domain.WiringPercentLoad,
		OilMode:      domain.OilNotLogged,
		PurgeMode:    domain.PurgeNone,
		RunHoursMode: domain.RunHoursTotal,
	}
	r := &domain.Reading{
		LogDate: "2024-06-01", LogTime: "14:30", Timezone: "UTC",
		CondInletTemp: f(85), CondOutletTemp: f(95), CondRefrigTemp: f(97), CondPressure: f(105),
		EvapInletTemp: f(54), EvapOutletTemp: f(44), EvapRefrigTemp: f(40), EvapPressure: f(33),
		PercentLoad: f(72), RunHours: f(900),
		OutsideAirTemp: f(80), Notes: str(""),
	}
	n := Normalize(r, p)
	assert.Empty(t, Invalid(&n))
}
