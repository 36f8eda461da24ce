package service

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importHeader = "serial,number,date,time,timezone," +
	"cond_inlet_temp,cond_outlet_temp,cond_refrig_temp,cond_pressure," +
	"evap_inlet_temp,evap_outlet_temp,evap_refrig_temp,evap_pressure," +
	"amps_phase1,amps_phase2,amps_phase3,volts_phase1,volts_phase2,volts_phase3," +
	"oil_pres_high,oil_pres_low,bearing_temp,run_hours,purge_time_hr,purge_time_min," +
	"outside_air_temp,notes"

func importRow(serial, date, hhmm string, oat string) string {
	return strings.Join([]string{
		serial, "CH-1", date, hhmm, "America/Chicago",
		"85", "95", "97", "105",
		"54", "44", "40", "33",
		"150", "160", "170", "460", "462", "458",
		"55", "22", "140", "1200", "0", "5",
		oat, "routine",
	}, ",")
}

func newImportFixture(fx *fixture) *ImportService {
	return &ImportService{
		readings:   fx.svc,
		profiles:   fx.profiles,
		quarantine: fx.quarantine,
		timeline:   fx.timeline,
	}
}

func TestParseRows(t *testing.T) {
	csv := importHeader + "\n" +
		importRow("SN-100", "2024-06-01", "14:30", "88") + "\n" +
		// Empty outside-air cell and a non-numeric pressure.
		strings.Replace(importRow("SN-100", "2024-06-02", "14:30", ""), ",105,", ",n/a,", 1) + "\n"

	rows, err := ParseRows(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	r := rows[0]
	assert.Equal(t, "SN-100", r.Serial)
	assert.Equal(t, "CH-1", r.Number)
	assert.Equal(t, "2024-06-01", r.LogDate)
	assert.Equal(t, "14:30", r.LogTime)
	assert.Equal(t, "America/Chicago", r.Timezone)
	require.NotNil(t, r.Reading.CondInletTemp)
	assert.Equal(t, 85.0, *r.Reading.CondInletTemp)
	require.NotNil(t, r.Reading.Notes)
	assert.Equal(t, "routine", *r.Reading.Notes)

	// Empty cells stay nil, unparsable cells become NaN for the gate.
	assert.Nil(t, rows[1].Reading.OutsideAirTemp)
	require.NotNil(t, rows[1].Reading.CondPressure)
	assert.True(t, math.IsNaN(*rows[1].Reading.CondPressure))
}

func TestParseRowsMissingRequiredColumn(t *testing.T) {
	_, err := ParseRows(strings.NewReader("serial,number,date,time\nSN-100,CH-1,2024-06-01,14:30\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timezone")
}

func TestParseRowsEmptyFile(t *testing.T) {
	rows, err := ParseRows(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDedupRowsKeepsFirst(t *testing.T) {
	csv := importHeader + "\n" +
		importRow("SN-100", "2024-06-01", "14:30", "88") + "\n" +
		importRow("SN-100", "2024-06-01", "14:30", "91") + "\n" + // same natural key
		importRow("SN-100", "2024-06-01", "15:30", "88") + "\n"

	rows, err := ParseRows(strings.NewReader(csv))
	require.NoError(t, err)
	deduped := DedupRows(rows)
	require.Len(t, deduped, 2)
	// The first occurrence wins.
	assert.Equal(t, 88.0, *deduped[0].Reading.OutsideAirTemp)
	assert.Equal(t, "15:30", deduped[1].LogTime)
}

func TestImportCSVOutcomes(t *testing.T) {
	fx := newFixture(false)
	imp := newImportFixture(fx)

	csv := importHeader + "\n" +
		importRow("SN-100", "2024-06-01", "14:30", "88") + "\n" + // commits
		importRow("SN-100", "2024-06-01", "14:30", "91") + "\n" + // in-file duplicate, dropped pre-pipeline
		importRow("SN-100", "2024-06-02", "14:30", "") + "\n" + // fails the gate
		importRow("SN-999", "2024-06-03", "14:30", "88") + "\n" // unknown equipment

	sum, err := imp.ImportCSV(context.Background(), strings.NewReader(csv), 9)
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Total) // after natural-key dedup
	assert.Equal(t, 1, sum.Committed)
	assert.Equal(t, 2, sum.Quarantined)
	assert.Equal(t, 0, sum.Duplicates)
	assert.Equal(t, 0, sum.Failed)

	require.Len(t, fx.logs.created, 1)
	assert.Equal(t, int64(7), fx.logs.created[0].EquipmentID)
	assert.Equal(t, int64(9), fx.logs.created[0].ActorID)

	require.Len(t, fx.quarantine.created, 2)
	assert.Contains(t, fx.quarantine.created[0].Reason, "outsideAirTemp")
	// Unresolved equipment quarantines without an equipment id.
	assert.Contains(t, fx.quarantine.created[1].Reason, "SN-999")
	assert.Nil(t, fx.quarantine.created[1].EquipmentID)

	// One timeline event per committed or quarantined row.
	assert.Len(t, fx.timeline.events, 3)
}

func TestImportCSVCountsStoredDuplicates(t *testing.T) {
	fx := newFixture(false)
	fx.logs.exists = true
	imp := newImportFixture(fx)

	csv := importHeader + "\n" + importRow("SN-100", "2024-06-01", "14:30", "88") + "\n"
	sum, err := imp.ImportCSV(context.Background(), strings.NewReader(csv), 9)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Total)
	assert.Equal(t, 1, sum.Duplicates)
	assert.Empty(t, fx.logs.created)
	assert.Empty(t, fx.quarantine.created)
}
