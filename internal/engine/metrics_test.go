package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantops/chillerwatch/internal/domain"
)

// stubRef returns fixed lookup values so each formula can be checked against
// hand-computed numbers.
type stubRef struct {
	tempAtPressure float64
	pressureAtTemp float64
	altFactor      float64
	ok             bool
}

func (s stubRef) RefrigerantTempAtPressure(context.Context, string, float64) (float64, bool) {
	return s.tempAtPressure, s.ok
}

func (s stubRef) RefrigerantPressureAtTemp(context.Context, string, float64) (float64, bool) {
	return s.pressureAtTemp, s.ok
}

func (s stubRef) AltitudeCorrection(context.Context, float64, domain.UnitSystem) (float64, bool) {
	return s.altFactor, s.ok
}

func metricsProfile() *domain.EquipmentProfile {
	return &domain.EquipmentProfile{
		ID: 7, FacilityID: 3, OrganizationID: 1, Name: "CH-1",
		WiringMode:        domain.WiringThreePhase,
		OilMode:           domain.OilHighLow,
		PurgeMode:         domain.PurgeHoursMinutes,
		RunHoursMode:      domain.RunHoursTotal,
		BearingTempFitted: true,
		UnitSystem:        domain.UnitsImperial,
		Refrigerant:       "R-134a",

		FullLoadAmps:         200,
		DesignCondApproach:   2,
		DesignEvapApproach:   2,
		DesignCondDeltaT:     10,
		DesignEvapDeltaT:     10,
		DesignCondFlow:       1500,
		DesignEvapFlow:       1200,
		DesignCondInletTemp:  85,
		DesignEvapOutletTemp: 44,
		DesignTons:           500,
		DesignKWPerTon:       0.6,
		CondLossPerDegree:    2,
		EvapLossPerDegree:    2,
		NonCondLossPerPct:    0.5,
		RunHoursPerYear:      4000,
		EnergyCostPerKWH:     0.1,
		EmissionFactorKGKWH:  0.4,
	}
}

func computeFixture(t *testing.T, nb Neighbors) *domain.ComputedLog {
	t.Helper()
	p := metricsProfile()
	n := Normalize(completeReading(), p)
	require.Empty(t, Invalid(&n))
	ref := stubRef{tempAtPressure: 96, pressureAtTemp: 100, altFactor: 0.93, ok: true}
	return Compute(context.Background(), &n, p, 2000, ref, nb)
}

func TestComputeApproachesAndLoadFactor(t *testing.T) {
	cl := computeFixture(t, Neighbors{})

	// Approaches from measured refrigerant temps.
	assert.InDelta(t, 2.0, cl.CondApproach, 1e-9)   // 97 - 95
	assert.InDelta(t, 4.0, cl.EvapApproach, 1e-9)   // 44 - 40
	assert.InDelta(t, 0.0, cl.CondApproachVariance, 1e-9)
	assert.InDelta(t, 2.0, cl.EvapApproachVariance, 1e-9)

	// Load factor from the highest phase.
	assert.InDelta(t, 85.0, cl.LoadFactor, 1e-9) // 170/200*100
	assert.Equal(t, "85.0000", cl.LoadFactorDisplay)

	// Table estimates are stored even when measured temps win.
	assert.InDelta(t, 96.0, cl.CondRefrigTempEst, 1e-9)
	assert.InDelta(t, 96.0, cl.EvapRefrigTempEst, 1e-9)
	assert.Zero(t, cl.CalcCondRefrigTemp)
}

func TestComputeLossDecomposition(t *testing.T) {
	cl := computeFixture(t, Neighbors{})

	// Non-condensables: (105-100)/100*100 = 5%, x0.5 loss per point.
	assert.InDelta(t, 5.0, cl.NonCondensables, 1e-4)
	assert.InDelta(t, 2.5, cl.NonCondLoss, 1e-4)

	assert.InDelta(t, 0.0, cl.InletLoss, 1e-4)
	assert.InDelta(t, 0.0, cl.CondApproachLoss, 1e-4)
	assert.InDelta(t, 0.0, cl.EvapTempLoss, 1e-4)
	assert.InDelta(t, 4.0, cl.EvapApproachLoss, 1e-4) // variance 2 x 2/deg
	assert.InDelta(t, 0.0, cl.DeltaLoss, 1e-4)

	sum := cl.InletLoss + cl.CondApproachLoss + cl.EvapTempLoss +
		cl.EvapApproachLoss + cl.NonCondLoss + cl.DeltaLoss
	assert.InDelta(t, sum, cl.TotalLoss, 1e-4)
	assert.InDelta(t, cl.InletLoss+cl.EvapTempLoss+cl.DeltaLoss, cl.OtherLoss, 1e-4)
	assert.InDelta(t, 6.5, cl.TotalLoss, 1e-4)
	assert.InDelta(t, 6.5, cl.EffLossDisplay, 1e-9)
}

func TestComputeCosts(t *testing.T) {
	cl := computeFixture(t, Neighbors{})

	assert.InDelta(t, 120000.0, cl.AnnualTargetCost, 1e-4) // 500*0.6*4000*0.1
	assert.InDelta(t, 30.0, cl.TargetCostPerHour, 1e-4)

	// Approach and non-condensables losses price against the annual target.
	assert.InDelta(t, 4800.0, cl.EvapApproachLossCost, 1e-4) // 4 * 120000 * 0.01
	assert.InDelta(t, 3000.0, cl.NonCondLossCost, 1e-4)      // 2.5 * 120000 * 0.01
	assert.InDelta(t, 7800.0, cl.LossCost, 1e-4)

	// actualCost == targetCost * (1 + totalLoss/100)
	assert.InDelta(t, cl.AnnualTargetCost*(1+cl.TotalLoss*0.01), cl.ActualCost, 1e-4)
	assert.InDelta(t, 127800.0, cl.ActualCost, 1e-4)
}

func TestComputeFlowsAndImbalance(t *testing.T) {
	cl := computeFixture(t, Neighbors{})

	// Both circuits are at design delta-T, so flow scales with load alone.
	assert.InDelta(t, 1275.0, cl.CondFlowEst, 1e-4) // 1500 * 0.85
	assert.InDelta(t, 1020.0, cl.EvapFlowEst, 1e-4) // 1200 * 0.85

	assert.InDelta(t, 11.7647, cl.AmpsImbalance, 1e-4)  // (170-150)/170
	assert.InDelta(t, 0.8658, cl.VoltsImbalance, 1e-4)  // (462-458)/462

	assert.InDelta(t, 33.0, cl.FinalOilDif, 1e-9) // 55 - 22
}

func TestComputeEnergyLossesAndAltitude(t *testing.T) {
	cl := computeFixture(t, Neighbors{})

	// kW loss 500*0.6*0.065 = 19.5, annualized over 4000 h.
	assert.InDelta(t, 78000.0, cl.KWHLoss, 1e-4)
	assert.InDelta(t, 78000.0*3412.14, cl.BTULoss, 1e-2)
	assert.InDelta(t, 31200.0, cl.CO2Loss, 1e-4)

	assert.InDelta(t, 0.93, cl.AltitudeCorrection, 1e-9)
}

func TestComputeFullLoadEquivalents(t *testing.T) {
	cl := computeFixture(t, Neighbors{})

	assert.InDelta(t, 4.7059, cl.FLEvapApproachLoss, 1e-4) // 4 / 0.85
	assert.InDelta(t, 2.9412, cl.FLNonCondLoss, 1e-4)      // 2.5 / 0.85
	assert.InDelta(t, 7.6471, cl.FLTotalLoss, 1e-4)
}

func TestComputeRunHoursContinuity(t *testing.T) {
	prevTS := time.Date(2024, 5, 31, 19, 30, 0, 0, time.UTC)
	nextTS := time.Date(2024, 6, 2, 19, 30, 0, 0, time.UTC)
	nb := Neighbors{
		Prev: &domain.ComputedLog{RunHours: 1100, ReadingTS: prevTS},
		Next: &domain.ComputedLog{RunHours: 1300, ReadingTS: nextTS},
	}
	cl := computeFixture(t, nb)

	assert.Equal(t, 1100.0, cl.LastRunHours)
	assert.Equal(t, 1300.0, cl.NextRunHours)
	require.NotNil(t, cl.LastRunTS)
	assert.Equal(t, prevTS, *cl.LastRunTS)
	assert.True(t, cl.RunHrsValid)

	// A reading behind its predecessor is flagged.
	nb.Prev.RunHours = 1500
	cl = computeFixture(t, nb)
	assert.False(t, cl.RunHrsValid)

	// A reading ahead of its successor is flagged.
	nb.Prev.RunHours = 1100
	nb.Next.RunHours = 1150
	cl = computeFixture(t, nb)
	assert.False(t, cl.RunHrsValid)
}

func TestComputeHighPressureRefrigerant(t *testing.T) {
	p := metricsProfile()
	p.Refrigerant = "R-22"
	p.HighPressureRefrig = true
	n := Normalize(completeReading(), p)
	ref := stubRef{tempAtPressure: 96, pressureAtTemp: 100, altFactor: 1, ok: true}
	cl := Compute(context.Background(), &n, p, 0, ref, Neighbors{})

	// The calculated condenser refrigerant temperature replaces the
	// (unlogged) measured one.
	assert.InDelta(t, 96.0, cl.CalcCondRefrigTemp, 1e-9)
	assert.InDelta(t, 1.0, cl.CondApproach, 1e-9) // 96 - 95
	assert.Zero(t, cl.CondRefrigTemp)
}

func TestComputeMissingLookupsDegrade(t *testing.T) {
	p := metricsProfile()
	n := Normalize(completeReading(), p)
	cl := Compute(context.Background(), &n, p, 2000, stubRef{}, Neighbors{})

	assert.Zero(t, cl.CondRefrigTempEst)
	assert.Zero(t, cl.NonCondensables)
	assert.Zero(t, cl.NonCondLoss)
	assert.Zero(t, cl.AltitudeCorrection)

	// The rest of the pipeline still runs.
	assert.InDelta(t, 85.0, cl.LoadFactor, 1e-9)
	assert.InDelta(t, 4.0, cl.EvapApproachLoss, 1e-4)
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 1.2346, Round4(1.23456))
	assert.Equal(t, 1.23, Round2(1.23456))
	assert.Equal(t, "7.5000", Fixed4(7.5))
	assert.Equal(t, -2.5001, Round4(-2.50009))
}
