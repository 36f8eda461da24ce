package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/plantops/chillerwatch/internal/domain"
	"github.com/plantops/chillerwatch/internal/engine"
)

// ImportService feeds spreadsheet rows through the same create pipeline as
// manual readings. Rows are pre-deduplicated in memory by their natural key
// before any row enters the pipeline, and rows without a resolvable equipment
// go straight to quarantine.
type ImportService struct {
	readings   *ReadingService
	profiles   ProfileStore
	quarantine QuarantineStore
	timeline   TimelineStore
}

// ImportRow is one parsed spreadsheet row.
type ImportRow struct {
	Serial   string
	Number   string
	LogDate  string
	LogTime  string
	Timezone string
	Reading  domain.Reading
}

// NaturalKey identifies a row independent of equipment id resolution.
func (r *ImportRow) NaturalKey() string {
	return strings.Join([]string{r.Serial, r.Number, r.LogDate, r.LogTime, r.Timezone}, "|")
}

// ImportSummary reports per-outcome row counts for one file.
type ImportSummary struct {
	Total       int      `json:"total"`
	Committed   int      `json:"committed"`
	Quarantined int      `json:"quarantined"`
	Duplicates  int      `json:"duplicates"`
	Failed      int      `json:"failed"`
	Errors      []string `json:"errors,omitempty"`
}

// ImportCSV parses, deduplicates and ingests a reading spreadsheet. Rows run
// sequentially; one bad row never aborts the file.
func (s *ImportService) ImportCSV(ctx context.Context, stream io.Reader, actorID int64) (*ImportSummary, error) {
	rows, err := ParseRows(stream)
	if err != nil {
		return nil, err
	}
	rows = DedupRows(rows)

	sum := &ImportSummary{}
	for i := range rows {
		row := &rows[i]
		sum.Total++

		profile, err := s.profiles.FindEquipment(ctx, row.Serial, row.Number)
		if errors.Is(err, domain.ErrEquipmentNotFound) {
			if qErr := s.quarantineUnresolved(ctx, row, actorID); qErr != nil {
				sum.Failed++
				sum.Errors = append(sum.Errors, fmt.Sprintf("row %s: %v", row.NaturalKey(), qErr))
				continue
			}
			sum.Quarantined++
			continue
		}
		if err != nil {
			sum.Failed++
			sum.Errors = append(sum.Errors, fmt.Sprintf("row %s: %v", row.NaturalKey(), err))
			continue
		}

		reading := row.Reading
		reading.EquipmentID = profile.ID
		reading.LogDate = row.LogDate
		reading.LogTime = row.LogTime
		reading.Timezone = row.Timezone

		result, err := s.readings.IngestReading(ctx, &reading, actorID)
		switch {
		case errors.Is(err, domain.ErrDuplicateReading):
			sum.Duplicates++
		case err != nil:
			sum.Failed++
			sum.Errors = append(sum.Errors, fmt.Sprintf("row %s: %v", row.NaturalKey(), err))
		case result.Quarantined != nil:
			sum.Quarantined++
		default:
			sum.Committed++
		}
	}
	log.Info().
		Int("total", sum.Total).
		Int("committed", sum.Committed).
		Int("quarantined", sum.Quarantined).
		Int("duplicates", sum.Duplicates).
		Int("failed", sum.Failed).
		Msg("import finished")
	return sum, nil
}

func (s *ImportService) quarantineUnresolved(ctx context.Context, row *ImportRow, actorID int64) error {
	r := row.Reading
	r.EquipmentID = 0
	r.ActorID = actorID
	r.LogDate = row.LogDate
	r.LogTime = row.LogTime
	r.Timezone = row.Timezone

	// No profile to normalize against; quarantine the raw field set as-is.
	n := rawNormalized(&r)
	_, err := s.readings.quarantineReading(ctx, &n,
		[]string{"equipment (serial " + row.Serial + ", number " + row.Number + ")"})
	return err
}

// rawNormalized snapshots a reading that never reached the normalizer, for
// quarantining rows whose equipment could not be resolved.
func rawNormalized(r *domain.Reading) engine.Normalized {
	return engine.Normalized{
		EquipmentID: r.EquipmentID,
		ActorID:     r.ActorID,
		LogDate:     r.LogDate,
		LogTime:     r.LogTime,
		Timezone:    r.Timezone,
		ReadingTS:   engine.CanonicalTS(r.LogDate, r.LogTime, r.Timezone),

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
		PurgeMinutes:   r.PurgeTimeMin,
		OutsideAirTemp: r.OutsideAirTemp,
		Notes:          r.Notes,
	}
}

// ParseRows reads the import spreadsheet. Empty cells stay nil; non-numeric
// cells become NaN so the validity gate classifies the row instead of the
// parser rejecting the file.
func ParseRows(stream io.Reader) ([]ImportRow, error) {
	reader := csv.NewReader(stream)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	col := make(map[string]int)
	for i, h := range headers {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"serial", "date", "time", "timezone"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	cell := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	num := func(record []string, name string) *float64 {
		raw := cell(record, name)
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			nan := math.NaN()
			return &nan
		}
		return &v
	}

	var rows []ImportRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv read: %w", err)
		}
		notes := cell(record, "notes")
		row := ImportRow{
			Serial:   cell(record, "serial"),
			Number:   cell(record, "number"),
			LogDate:  cell(record, "date"),
			LogTime:  cell(record, "time"),
			Timezone: cell(record, "timezone"),
			Reading: domain.Reading{
				CondInletTemp:  num(record, "cond_inlet_temp"),
				CondOutletTemp: num(record, "cond_outlet_temp"),
				CondRefrigTemp: num(record, "cond_refrig_temp"),
				CondPressure:   num(record, "cond_pressure"),
				EvapInletTemp:  num(record, "evap_inlet_temp"),
				EvapOutletTemp: num(record, "evap_outlet_temp"),
				EvapRefrigTemp: num(record, "evap_refrig_temp"),
				EvapPressure:   num(record, "evap_pressure"),
				AmpsPhase1:     num(record, "amps_phase1"),
				AmpsPhase2:     num(record, "amps_phase2"),
				AmpsPhase3:     num(record, "amps_phase3"),
				VoltsPhase1:    num(record, "volts_phase1"),
				VoltsPhase2:    num(record, "volts_phase2"),
				VoltsPhase3:    num(record, "volts_phase3"),
				PercentLoad:    num(record, "percent_load"),
				OilPresHigh:    num(record, "oil_pres_high"),
				OilPresLow:     num(record, "oil_pres_low"),
				OilPresDif:     num(record, "oil_pres_dif"),
				BearingTemp:    num(record, "bearing_temp"),
				RunHours:       num(record, "run_hours"),
				PurgeTimeHr:    num(record, "purge_time_hr"),
				PurgeTimeMin:   num(record, "purge_time_min"),
				OutsideAirTemp: num(record, "outside_air_temp"),
				Notes:          &notes,
			},
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DedupRows keeps the first occurrence per natural key.
func DedupRows(rows []ImportRow) []ImportRow {
	seen := make(map[string]bool, len(rows))
	out := rows[:0:0]
	for _, r := range rows {
		key := r.NaturalKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
