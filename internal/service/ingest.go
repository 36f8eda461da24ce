package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/plantops/chillerwatch/internal/domain"
	"github.com/plantops/chillerwatch/internal/engine"
)

// ReadingService runs the ingestion pipeline: normalize, duplicate check,
// continuity lookup, derived metrics, validity gate, then commit or
// quarantine with one timeline event either way.
type ReadingService struct {
	logs          LogStore
	quarantine    QuarantineStore
	timeline      TimelineStore
	profiles      ProfileStore
	ref           engine.RefLookup
	alerts        AlertEvaluator
	alertsEnabled bool
}

// IngestResult is the terminal classification of one ingestion. Exactly one
// of Log and Quarantined is set; a quarantine is a successful alternate
// outcome, not an error.
type IngestResult struct {
	Log         *domain.ComputedLog
	Quarantined *domain.QuarantinedReading
}

func (s *ReadingService) IngestReading(ctx context.Context, raw *domain.Reading, actorID int64) (*IngestResult, error) {
	raw.ActorID = actorID

	profile, err := s.profiles.GetEquipment(ctx, raw.EquipmentID)
	if err != nil {
		return nil, err
	}
	facility, err := s.profiles.GetFacility(ctx, profile.FacilityID)
	if err != nil {
		return nil, err
	}

	n := engine.Normalize(raw, profile)

	// Duplicate check before any metric work.
	if n.ReadingTS != nil {
		exists, err := s.logs.FindByKey(ctx, raw.EquipmentID, *n.ReadingTS, 0)
		if err != nil {
			return nil, fmt.Errorf("duplicate check: %w", err)
		}
		if exists {
			return nil, domain.ErrDuplicateReading
		}
	}

	nb, err := s.neighbors(ctx, raw.EquipmentID, n.ReadingTS, 0)
	if err != nil {
		return nil, err
	}

	cl := engine.Compute(ctx, &n, profile, facility.Altitude, s.ref, nb)

	if invalid := engine.Invalid(&n); len(invalid) > 0 {
		q, err := s.quarantineReading(ctx, &n, invalid)
		if err != nil {
			return nil, err
		}
		return &IngestResult{Quarantined: q}, nil
	}

	now := time.Now().UTC()
	cl.CreatedAt = now
	cl.UpdatedAt = now
	if err := s.logs.Create(ctx, cl); err != nil {
		return nil, err
	}

	if err := s.timeline.Append(ctx, &domain.TimelineEvent{
		EquipmentID: &cl.EquipmentID,
		Kind:        domain.EventNewReading,
		Description: fmt.Sprintf("Reading for %s at %s", profile.Name, cl.ReadingTS.Format(time.RFC3339)),
		ActorID:     actorID,
		OccurredAt:  now,
		CreatedAt:   now,
	}); err != nil {
		return nil, err
	}

	if s.alertsEnabled {
		s.alerts.Evaluate(ctx, cl, profile.Name, facility.Name)
	}

	return &IngestResult{Log: cl}, nil
}

// UpdateReading merges a patch onto a stored log, re-runs the normalizer,
// continuity lookup and engine, and persists the merged result in one write.
// The validity gate is not re-applied on update.
func (s *ReadingService) UpdateReading(ctx context.Context, id int64, patch *domain.Reading, actorID int64) (*domain.ComputedLog, error) {
	existing, err := s.logs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetEquipment(ctx, existing.EquipmentID)
	if err != nil {
		return nil, err
	}
	facility, err := s.profiles.GetFacility(ctx, profile.FacilityID)
	if err != nil {
		return nil, err
	}

	merged := mergePatch(existing, patch)
	merged.ActorID = actorID
	n := engine.Normalize(merged, profile)

	// New readings with a broken timestamp quarantine; an edit must not strip
	// a committed log of its dedup key.
	if n.ReadingTS == nil {
		return nil, domain.ErrBadTimestamp
	}

	exists, err := s.logs.FindByKey(ctx, existing.EquipmentID, *n.ReadingTS, id)
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateReading
	}

	nb, err := s.neighbors(ctx, existing.EquipmentID, n.ReadingTS, id)
	if err != nil {
		return nil, err
	}

	cl := engine.Compute(ctx, &n, profile, facility.Altitude, s.ref, nb)
	cl.ID = existing.ID
	cl.CreatedAt = existing.CreatedAt
	now := time.Now().UTC()
	cl.UpdatedAt = now
	if err := s.logs.Update(ctx, cl); err != nil {
		return nil, err
	}

	if err := s.timeline.Append(ctx, &domain.TimelineEvent{
		EquipmentID: &cl.EquipmentID,
		Kind:        domain.EventEditedReading,
		Description: fmt.Sprintf("Reading for %s created %s edited %s", profile.Name,
			existing.CreatedAt.Format(time.RFC3339), now.Format(time.RFC3339)),
		ActorID:    actorID,
		OccurredAt: now,
		CreatedAt:  now,
	}); err != nil {
		return nil, err
	}

	return cl, nil
}

func (s *ReadingService) DeleteReading(ctx context.Context, id int64) error {
	return s.logs.SoftDelete(ctx, id)
}

func (s *ReadingService) neighbors(ctx context.Context, equipmentID int64, ts *time.Time, excludeID int64) (engine.Neighbors, error) {
	var nb engine.Neighbors
	if ts == nil {
		return nb, nil
	}
	prev, err := s.logs.FindNearestBefore(ctx, equipmentID, *ts, excludeID)
	if err != nil {
		return nb, fmt.Errorf("continuity lookup: %w", err)
	}
	next, err := s.logs.FindNearestAfter(ctx, equipmentID, *ts, excludeID)
	if err != nil {
		return nb, fmt.Errorf("continuity lookup: %w", err)
	}
	nb.Prev, nb.Next = prev, next
	return nb, nil
}

// quarantineReading commits the checklist snapshot and its timeline event.
func (s *ReadingService) quarantineReading(ctx context.Context, n *engine.Normalized, invalid []string) (*domain.QuarantinedReading, error) {
	now := time.Now().UTC()
	q := &domain.QuarantinedReading{
		ID:       uuid.NewString(),
		ActorID:  n.ActorID,
		LogDate:  n.LogDate,
		LogTime:  n.LogTime,
		Timezone: n.Timezone,

		CondInletTemp:  n.CondInletTemp,
		CondOutletTemp: n.CondOutletTemp,
		CondRefrigTemp: n.CondRefrigTemp,
		CondPressure:   n.CondPressure,
		EvapInletTemp:  n.EvapInletTemp,
		EvapOutletTemp: n.EvapOutletTemp,
		EvapRefrigTemp: n.EvapRefrigTemp,
		EvapPressure:   n.EvapPressure,

		AmpsPhase1:  n.AmpsPhase1,
		AmpsPhase2:  n.AmpsPhase2,
		AmpsPhase3:  n.AmpsPhase3,
		VoltsPhase1: n.VoltsPhase1,
		VoltsPhase2: n.VoltsPhase2,
		VoltsPhase3: n.VoltsPhase3,

		OilPresHigh: n.OilPresHigh,
		OilPresLow:  n.OilPresLow,
		OilPresDif:  n.OilPresDif,

		BearingTemp:    n.BearingTemp,
		RunHours:       n.RunHours,
		PurgeMinutes:   n.PurgeMinutes,
		OutsideAirTemp: n.OutsideAirTemp,
		Notes:          n.Notes,

		Reason:    "missing or non-numeric: " + strings.Join(invalid, ", "),
		CreatedAt: now,
	}
	if n.EquipmentID != 0 {
		id := n.EquipmentID
		q.EquipmentID = &id
	}
	q.ReadingTS = n.ReadingTS

	if err := s.quarantine.Create(ctx, q); err != nil {
		return nil, err
	}
	if err := s.timeline.Append(ctx, &domain.TimelineEvent{
		EquipmentID: q.EquipmentID,
		Kind:        domain.EventBadReading,
		Description: q.Reason,
		ActorID:     n.ActorID,
		OccurredAt:  now,
		CreatedAt:   now,
	}); err != nil {
		return nil, err
	}
	log.Info().Str("quarantine_id", q.ID).Strs("invalid", invalid).Msg("reading quarantined")
	return q, nil
}

// mergePatch overlays the caller's patch on the stored log's input fields.
// Nil patch fields keep the stored value.
func mergePatch(existing *domain.ComputedLog, patch *domain.Reading) *domain.Reading {
	f := func(p *float64, v float64) *float64 {
		if p != nil {
			return p
		}
		c := v
		return &c
	}
	str := func(p string, v string) string {
		if p != "" {
			return p
		}
		return v
	}
	notes := patch.Notes
	if notes == nil {
		c := existing.Notes
		notes = &c
	}
	return &domain.Reading{
		EquipmentID: existing.EquipmentID,

		LogDate:  str(patch.LogDate, existing.LogDate),
		LogTime:  str(patch.LogTime, existing.LogTime),
		Timezone: str(patch.Timezone, existing.Timezone),

		CondInletTemp:  f(patch.CondInletTemp, existing.CondInletTemp),
		CondOutletTemp: f(patch.CondOutletTemp, existing.CondOutletTemp),
		CondRefrigTemp: f(patch.CondRefrigTemp, existing.CondRefrigTemp),
		CondPressure:   f(patch.CondPressure, existing.CondPressure),
		EvapInletTemp:  f(patch.EvapInletTemp, existing.EvapInletTemp),
		EvapOutletTemp: f(patch.EvapOutletTemp, existing.EvapOutletTemp),
		EvapRefrigTemp: f(patch.EvapRefrigTemp, existing.EvapRefrigTemp),
		EvapPressure:   f(patch.EvapPressure, existing.EvapPressure),

		AmpsPhase1:  f(patch.AmpsPhase1, existing.AmpsPhase1),
		AmpsPhase2:  f(patch.AmpsPhase2, existing.AmpsPhase2),
		AmpsPhase3:  f(patch.AmpsPhase3, existing.AmpsPhase3),
		VoltsPhase1: f(patch.VoltsPhase1, existing.VoltsPhase1),
		VoltsPhase2: f(patch.VoltsPhase2, existing.VoltsPhase2),
		VoltsPhase3: f(patch.VoltsPhase3, existing.VoltsPhase3),
		PercentLoad: f(patch.PercentLoad, existing.PercentLoad),

		OilPresHigh: f(patch.OilPresHigh, existing.OilPresHigh),
		OilPresLow:  f(patch.OilPresLow, existing.OilPresLow),
		OilPresDif:  f(patch.OilPresDif, existing.OilPresDif),

		BearingTemp: f(patch.BearingTemp, existing.BearingTemp),
		RunHours:    f(patch.RunHours, existing.RunHours),
		// The stored log only keeps total purge minutes; feeding it back
		// through the minutes field reproduces the same total in every
		// purge mode when the patch does not touch purge time.
		PurgeTimeHr:    patch.PurgeTimeHr,
		PurgeTimeMin:   f(patch.PurgeTimeMin, existing.PurgeMinutes),
		OutsideAirTemp: f(patch.OutsideAirTemp, existing.OutsideAirTemp),
		Notes:          notes,
	}
}
