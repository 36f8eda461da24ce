package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/plantops/chillerwatch/internal/domain"
)

type TimelineRepo struct {
	db *sqlx.DB
}

func (r *TimelineRepo) Append(ctx context.Context, e *domain.TimelineEvent) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO timeline_events (equipment_id, kind, description, actor_id, occurred_at, created_at)
		 VALUES (:equipment_id, :kind, :description, :actor_id, :occurred_at, :created_at)`, e)
	return err
}

func (r *TimelineRepo) ListByEquipment(ctx context.Context, equipmentID int64, limit int) ([]domain.TimelineEvent, error) {
	var out []domain.TimelineEvent
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM timeline_events
		 WHERE equipment_id = $1 ORDER BY created_at DESC LIMIT $2`, equipmentID, limit)
	return out, err
}
