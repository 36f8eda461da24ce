package engine

import (
	"context"
	"math"

	"github.com/plantops/chillerwatch/internal/domain"
)

// RefLookup is the reference-table surface the engine consumes. Lookups that
// cannot resolve return ok=false and the dependent metrics degrade to zero
// instead of aborting the ingestion.
type RefLookup interface {
	RefrigerantTempAtPressure(ctx context.Context, refrigerant string, pressure float64) (float64, bool)
	RefrigerantPressureAtTemp(ctx context.Context, refrigerant string, temp float64) (float64, bool)
	AltitudeCorrection(ctx context.Context, altitude float64, units domain.UnitSystem) (float64, bool)
}

// Neighbors carries the chronologically nearest committed run-hours-bearing
// logs around the reading's timestamp.
type Neighbors struct {
	Prev *domain.ComputedLog
	Next *domain.ComputedLog
}

// Compute runs the full derived-metric pipeline over a normalized reading.
// It is a pure function of its arguments; every intermediate result is
// rounded to 4 decimals before reuse.
func Compute(ctx context.Context, n *Normalized, p *domain.EquipmentProfile, altitude float64, ref RefLookup, nb Neighbors) *domain.ComputedLog {
	cl := &domain.ComputedLog{
		EquipmentID:    n.EquipmentID,
		FacilityID:     p.FacilityID,
		OrganizationID: p.OrganizationID,
		ActorID:        n.ActorID,
		LogDate:        n.LogDate,
		LogTime:        n.LogTime,
		Timezone:       n.Timezone,

		CondInletTemp:  nz(n.CondInletTemp),
		CondOutletTemp: nz(n.CondOutletTemp),
		CondRefrigTemp: nz(n.CondRefrigTemp),
		CondPressure:   nz(n.CondPressure),
		EvapInletTemp:  nz(n.EvapInletTemp),
		EvapOutletTemp: nz(n.EvapOutletTemp),
		EvapRefrigTemp: nz(n.EvapRefrigTemp),
		EvapPressure:   nz(n.EvapPressure),

		AmpsPhase1:  nz(n.AmpsPhase1),
		AmpsPhase2:  nz(n.AmpsPhase2),
		AmpsPhase3:  nz(n.AmpsPhase3),
		VoltsPhase1: nz(n.VoltsPhase1),
		VoltsPhase2: nz(n.VoltsPhase2),
		VoltsPhase3: nz(n.VoltsPhase3),
		PercentLoad: nz(n.PercentLoad),

		OilPresHigh: nz(n.OilPresHigh),
		OilPresLow:  nz(n.OilPresLow),
		OilPresDif:  nz(n.OilPresDif),

		BearingTemp:    nz(n.BearingTemp),
		RunHours:       nz(n.RunHours),
		PurgeMinutes:   nz(n.PurgeMinutes),
		OutsideAirTemp: nz(n.OutsideAirTemp),
	}
	if n.ReadingTS != nil {
		cl.ReadingTS = *n.ReadingTS
	}
	if n.Notes != nil {
		cl.Notes = *n.Notes
	}

	// Refrigerant-table temperature estimates. For high-pressure refrigerants
	// the calculated condenser temperature replaces the (unmeasured) one in
	// every downstream formula.
	if est, ok := ref.RefrigerantTempAtPressure(ctx, p.Refrigerant, cl.CondPressure); ok {
		cl.CondRefrigTempEst = Round4(est)
	}
	if est, ok := ref.RefrigerantTempAtPressure(ctx, p.Refrigerant, cl.EvapPressure); ok {
		cl.EvapRefrigTempEst = Round4(est)
	}
	effCondRefrig := cl.CondRefrigTemp
	if p.HighPressureRefrig {
		cl.CalcCondRefrigTemp = cl.CondRefrigTempEst
		effCondRefrig = cl.CalcCondRefrigTemp
	} else if effCondRefrig == 0 {
		effCondRefrig = cl.CondRefrigTempEst
	}
	effEvapRefrig := cl.EvapRefrigTemp
	if effEvapRefrig == 0 {
		effEvapRefrig = cl.EvapRefrigTempEst
	}

	// Non-condensables: measured condenser pressure above the saturation
	// pressure for the refrigerant temperature, as a percentage.
	if expected, ok := ref.RefrigerantPressureAtTemp(ctx, p.Refrigerant, effCondRefrig); ok && expected > 0 {
		cl.NonCondensables = Round4(math.Max(0, (cl.CondPressure-expected)/expected*100))
	}

	// Approach temperatures and variance vs design.
	cl.CondApproach = Round4(effCondRefrig - cl.CondOutletTemp)
	cl.EvapApproach = Round4(cl.EvapOutletTemp - effEvapRefrig)
	cl.CondApproachVariance = Round4(math.Max(0, cl.CondApproach-p.DesignCondApproach))
	cl.EvapApproachVariance = Round4(math.Max(0, cl.EvapApproach-p.DesignEvapApproach))

	// Load factor.
	if p.WiringMode == domain.WiringPercentLoad {
		cl.LoadFactor = Round4(cl.PercentLoad)
	} else if p.FullLoadAmps > 0 {
		maxAmps := math.Max(cl.AmpsPhase1, math.Max(cl.AmpsPhase2, cl.AmpsPhase3))
		cl.LoadFactor = Round4(maxAmps / p.FullLoadAmps * 100)
	}
	cl.LoadFactorDisplay = Fixed4(cl.LoadFactor)

	// Loss family.
	condDeltaT := Round4(cl.CondOutletTemp - cl.CondInletTemp)
	evapDeltaT := Round4(cl.EvapInletTemp - cl.EvapOutletTemp)
	cl.InletLoss = Round4(math.Max(0, (cl.CondInletTemp-p.DesignCondInletTemp)*p.CondLossPerDegree))
	cl.CondApproachLoss = Round4(cl.CondApproachVariance * p.CondLossPerDegree)
	cl.EvapTempLoss = Round4(math.Max(0, (p.DesignEvapOutletTemp-cl.EvapOutletTemp)*p.EvapLossPerDegree))
	cl.EvapApproachLoss = Round4(cl.EvapApproachVariance * p.EvapLossPerDegree)
	cl.NonCondLoss = Round4(cl.NonCondensables * p.NonCondLossPerPct)
	cl.DeltaLoss = Round4(math.Max(0, (condDeltaT-p.DesignCondDeltaT)*p.CondLossPerDegree))
	cl.TotalLoss = Round4(cl.InletLoss + cl.CondApproachLoss + cl.EvapTempLoss + cl.EvapApproachLoss + cl.NonCondLoss + cl.DeltaLoss)
	cl.OtherLoss = Round4(cl.InletLoss + cl.EvapTempLoss + cl.DeltaLoss)
	cl.EffLossDisplay = Round2(cl.TotalLoss)

	// Costs. Temperature-driven losses price against the hourly rate, the
	// rest against the annual target.
	cl.AnnualTargetCost = Round4(p.DesignTons * p.DesignKWPerTon * p.RunHoursPerYear * p.EnergyCostPerKWH)
	if p.RunHoursPerYear > 0 {
		cl.TargetCostPerHour = Round4(cl.AnnualTargetCost / p.RunHoursPerYear)
	}
	cl.InletLossCost = Round4(cl.InletLoss * cl.TargetCostPerHour)
	cl.EvapTempLossCost = Round4(cl.EvapTempLoss * cl.TargetCostPerHour)
	cl.DeltaLossCost = Round4(cl.DeltaLoss * cl.TargetCostPerHour)
	cl.CondApproachLossCost = Round4(cl.CondApproachLoss * cl.AnnualTargetCost * 0.01)
	cl.EvapApproachLossCost = Round4(cl.EvapApproachLoss * cl.AnnualTargetCost * 0.01)
	cl.NonCondLossCost = Round4(cl.NonCondLoss * cl.AnnualTargetCost * 0.01)
	cl.LossCost = Round4(cl.InletLossCost + cl.CondApproachLossCost + cl.EvapTempLossCost + cl.EvapApproachLossCost + cl.NonCondLossCost + cl.DeltaLossCost)
	cl.ActualCost = Round4(cl.AnnualTargetCost * (1 + cl.TotalLoss*0.01))

	// Flow estimates from delta-T and load.
	if condDeltaT > 0 {
		cl.CondFlowEst = Round4(p.DesignCondFlow * (p.DesignCondDeltaT / condDeltaT) * (cl.LoadFactor / 100))
	}
	if evapDeltaT > 0 {
		cl.EvapFlowEst = Round4(p.DesignEvapFlow * (p.DesignEvapDeltaT / evapDeltaT) * (cl.LoadFactor / 100))
	}

	// Electrical imbalance across phases.
	cl.AmpsImbalance = imbalance(cl.AmpsPhase1, cl.AmpsPhase2, cl.AmpsPhase3)
	cl.VoltsImbalance = imbalance(cl.VoltsPhase1, cl.VoltsPhase2, cl.VoltsPhase3)

	// Final oil differential, mirroring the normalizer's mode branching.
	switch p.OilMode {
	case domain.OilHighLow:
		cl.FinalOilDif = Round4(cl.OilPresHigh - cl.OilPresLow)
	case domain.OilHighOnly:
		cl.FinalOilDif = Round4(cl.OilPresHigh - cl.EvapPressure)
	case domain.OilDifferential:
		cl.FinalOilDif = Round4(cl.OilPresDif)
	case domain.OilNotLogged:
		cl.FinalOilDif = 0
	}

	// Run-hours continuity.
	if nb.Prev != nil {
		cl.LastRunHours = nb.Prev.RunHours
		ts := nb.Prev.ReadingTS
		cl.LastRunTS = &ts
	}
	if nb.Next != nil {
		cl.NextRunHours = nb.Next.RunHours
		ts := nb.Next.ReadingTS
		cl.NextRunTS = &ts
	}
	cl.RunHrsValid = runHoursValid(p.RunHoursMode, cl.RunHours, nb)

	// Energy-equivalent losses.
	kwLoss := Round4(p.DesignTons * p.DesignKWPerTon * cl.TotalLoss * 0.01)
	cl.KWHLoss = Round4(kwLoss * p.RunHoursPerYear)
	cl.BTULoss = Round4(cl.KWHLoss * 3412.14)
	cl.CO2Loss = Round4(cl.KWHLoss * p.EmissionFactorKGKWH)

	if factor, ok := ref.AltitudeCorrection(ctx, altitude, p.UnitSystem); ok {
		cl.AltitudeCorrection = Round4(factor)
	}

	// Full-load-equivalent loss family for load-normalized comparison.
	if cl.LoadFactor > 0 {
		scale := cl.LoadFactor * 0.01
		cl.FLInletLoss = Round4(cl.InletLoss / scale)
		cl.FLCondApproachLoss = Round4(cl.CondApproachLoss / scale)
		cl.FLEvapTempLoss = Round4(cl.EvapTempLoss / scale)
		cl.FLEvapApproachLoss = Round4(cl.EvapApproachLoss / scale)
		cl.FLNonCondLoss = Round4(cl.NonCondLoss / scale)
		cl.FLDeltaLoss = Round4(cl.DeltaLoss / scale)
		cl.FLTotalLoss = Round4(cl.FLInletLoss + cl.FLCondApproachLoss + cl.FLEvapTempLoss + cl.FLEvapApproachLoss + cl.FLNonCondLoss + cl.FLDeltaLoss)
	}

	return cl
}

// imbalance is the spread across reporting phases as a percentage of the
// highest phase. Fewer than two nonzero phases yields zero.
func imbalance(a, b, c float64) float64 {
	var phases []float64
	for _, v := range []float64{a, b, c} {
		if v > 0 {
			phases = append(phases, v)
		}
	}
	if len(phases) < 2 {
		return 0
	}
	max, min := phases[0], phases[0]
	for _, v := range phases[1:] {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	if max == 0 {
		return 0
	}
	return Round4((max - min) / max * 100)
}

func runHoursValid(mode domain.RunHoursMode, hours float64, nb Neighbors) bool {
	if mode == domain.RunHoursNotLogged {
		return true
	}
	if nb.Prev != nil && hours < nb.Prev.RunHours {
		return false
	}
	if nb.Next != nil && nb.Next.RunHours > 0 && hours > nb.Next.RunHours {
		return false
	}
	return true
}
