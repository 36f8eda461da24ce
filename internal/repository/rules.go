package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/plantops/chillerwatch/internal/domain"
)

type RuleRepo struct {
	db *sqlx.DB
}

func (r *RuleRepo) ListByUser(ctx context.Context, userID int64) ([]domain.AlertRule, error) {
	var out []domain.AlertRule
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM alert_rules WHERE user_id = $1 ORDER BY id`, userID)
	return out, err
}
