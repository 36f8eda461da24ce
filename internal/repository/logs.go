package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/plantops/chillerwatch/internal/domain"
)

type LogRepo struct {
	db *sqlx.DB
}

var logColumns = []string{
	"equipment_id", "facility_id", "organization_id", "actor_id",
	"reading_ts", "log_date", "log_time", "timezone",
	"cond_inlet_temp", "cond_outlet_temp", "cond_refrig_temp", "cond_pressure",
	"evap_inlet_temp", "evap_outlet_temp", "evap_refrig_temp", "evap_pressure",
	"amps_phase1", "amps_phase2", "amps_phase3",
	"volts_phase1", "volts_phase2", "volts_phase3", "percent_load",
	"oil_pres_high", "oil_pres_low", "oil_pres_dif",
	"bearing_temp", "run_hours", "purge_minutes", "outside_air_temp", "notes",
	"cond_approach", "evap_approach", "cond_approach_variance", "evap_approach_variance",
	"load_factor", "load_factor_display",
	"inlet_loss", "cond_approach_loss", "evap_temp_loss", "evap_approach_loss",
	"non_cond_loss", "delta_loss", "total_loss", "other_loss", "eff_loss_display",
	"annual_target_cost", "target_cost_per_hour",
	"inlet_loss_cost", "cond_approach_loss_cost", "evap_temp_loss_cost",
	"evap_approach_loss_cost", "non_cond_loss_cost", "delta_loss_cost",
	"loss_cost", "actual_cost",
	"cond_flow_est", "evap_flow_est",
	"cond_refrig_temp_est", "evap_refrig_temp_est", "calc_cond_refrig_temp",
	"amps_imbalance", "volts_imbalance",
	"final_oil_dif", "non_condensables",
	"last_run_hours", "next_run_hours", "last_run_ts", "next_run_ts", "run_hrs_valid",
	"kwh_loss", "btu_loss", "co2_loss", "altitude_correction",
	"fl_inlet_loss", "fl_cond_approach_loss", "fl_evap_temp_loss",
	"fl_evap_approach_loss", "fl_non_cond_loss", "fl_delta_loss", "fl_total_loss",
	"deleted", "created_at", "updated_at",
}

var (
	logInsert = `INSERT INTO computed_logs (` + strings.Join(logColumns, ", ") +
		`) VALUES (:` + strings.Join(logColumns, ", :") + `) RETURNING id`
	logUpdate = func() string {
		sets := make([]string, len(logColumns))
		for i, c := range logColumns {
			sets[i] = c + " = :" + c
		}
		return `UPDATE computed_logs SET ` + strings.Join(sets, ", ") + ` WHERE id = :id`
	}()
)

// Create inserts a fully-built log in one write. A unique-index violation on
// (equipment_id, reading_ts) maps to ErrDuplicateReading.
func (r *LogRepo) Create(ctx context.Context, cl *domain.ComputedLog) error {
	rows, err := r.db.NamedQueryContext(ctx, logInsert, cl)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateReading
		}
		return err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&cl.ID); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *LogRepo) Update(ctx context.Context, cl *domain.ComputedLog) error {
	_, err := r.db.NamedExecContext(ctx, logUpdate, cl)
	return err
}

func (r *LogRepo) GetByID(ctx context.Context, id int64) (*domain.ComputedLog, error) {
	var cl domain.ComputedLog
	err := r.db.GetContext(ctx, &cl, `SELECT * FROM computed_logs WHERE id = $1 AND NOT deleted`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return &cl, err
}

// FindByKey reports whether a non-deleted log exists for the dedup key,
// optionally excluding one id (the update path excludes the record itself).
func (r *LogRepo) FindByKey(ctx context.Context, equipmentID int64, ts time.Time, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (
			SELECT 1 FROM computed_logs
			WHERE equipment_id = $1 AND reading_ts = $2 AND NOT deleted AND id <> $3
		)`, equipmentID, ts, excludeID)
	return exists, err
}

// FindNearestBefore returns the chronologically closest committed log before
// ts that carries run hours and has not been flagged invalid.
func (r *LogRepo) FindNearestBefore(ctx context.Context, equipmentID int64, ts time.Time, excludeID int64) (*domain.ComputedLog, error) {
	return r.nearest(ctx, equipmentID, ts, excludeID, "<", "DESC")
}

// FindNearestAfter is the forward counterpart of FindNearestBefore.
func (r *LogRepo) FindNearestAfter(ctx context.Context, equipmentID int64, ts time.Time, excludeID int64) (*domain.ComputedLog, error) {
	return r.nearest(ctx, equipmentID, ts, excludeID, ">", "ASC")
}

func (r *LogRepo) nearest(ctx context.Context, equipmentID int64, ts time.Time, excludeID int64, cmp, order string) (*domain.ComputedLog, error) {
	var cl domain.ComputedLog
	err := r.db.GetContext(ctx, &cl,
		`SELECT * FROM computed_logs
		 WHERE equipment_id = $1 AND reading_ts `+cmp+` $2
		   AND NOT deleted AND run_hrs_valid AND run_hours > 0 AND id <> $3
		 ORDER BY reading_ts `+order+` LIMIT 1`,
		equipmentID, ts, excludeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cl, nil
}

func (r *LogRepo) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE computed_logs SET deleted = TRUE, updated_at = now() WHERE id = $1 AND NOT deleted`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LogRepo) ListByEquipment(ctx context.Context, equipmentID int64, limit int) ([]domain.ComputedLog, error) {
	var out []domain.ComputedLog
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM computed_logs
		 WHERE equipment_id = $1 AND NOT deleted
		 ORDER BY reading_ts DESC LIMIT $2`, equipmentID, limit)
	return out, err
}
