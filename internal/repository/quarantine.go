package repository

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/plantops/chillerwatch/internal/domain"
)

type QuarantineRepo struct {
	db *sqlx.DB
}

var quarantineColumns = []string{
	"id", "equipment_id", "actor_id", "reading_ts", "log_date", "log_time", "timezone",
	"cond_inlet_temp", "cond_outlet_temp", "cond_refrig_temp", "cond_pressure",
	"evap_inlet_temp", "evap_outlet_temp", "evap_refrig_temp", "evap_pressure",
	"amps_phase1", "amps_phase2", "amps_phase3",
	"volts_phase1", "volts_phase2", "volts_phase3",
	"oil_pres_high", "oil_pres_low", "oil_pres_dif",
	"bearing_temp", "run_hours", "purge_minutes", "outside_air_temp", "notes",
	"reason", "created_at",
}

var quarantineInsert = `INSERT INTO quarantined_readings (` +
	strings.Join(quarantineColumns, ", ") + `) VALUES (:` +
	strings.Join(quarantineColumns, ", :") + `)`

func (r *QuarantineRepo) Create(ctx context.Context, q *domain.QuarantinedReading) error {
	_, err := r.db.NamedExecContext(ctx, quarantineInsert, q)
	return err
}

func (r *QuarantineRepo) ListByEquipment(ctx context.Context, equipmentID int64, limit int) ([]domain.QuarantinedReading, error) {
	var out []domain.QuarantinedReading
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM quarantined_readings
		 WHERE equipment_id = $1 ORDER BY created_at DESC LIMIT $2`, equipmentID, limit)
	return out, err
}
