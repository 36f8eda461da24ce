package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/plantops/chillerwatch/internal/domain"
)

type Repos struct {
	db *sqlx.DB

	Logs       *LogRepo
	Quarantine *QuarantineRepo
	Timeline   *TimelineRepo
	Rules      *RuleRepo
}

func New(db *sqlx.DB) *Repos {
	return &Repos{
		db:         db,
		Logs:       &LogRepo{db: db},
		Quarantine: &QuarantineRepo{db: db},
		Timeline:   &TimelineRepo{db: db},
		Rules:      &RuleRepo{db: db},
	}
}

func (r *Repos) GetEquipment(ctx context.Context, id int64) (*domain.EquipmentProfile, error) {
	var p domain.EquipmentProfile
	err := r.db.GetContext(ctx, &p, `SELECT * FROM equipment WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEquipmentNotFound
	}
	return &p, err
}

// FindEquipment resolves a bulk-import row's unit by serial or, failing that,
// by equipment number.
func (r *Repos) FindEquipment(ctx context.Context, serial, number string) (*domain.EquipmentProfile, error) {
	var p domain.EquipmentProfile
	err := r.db.GetContext(ctx, &p, `SELECT * FROM equipment WHERE serial = $1 LIMIT 1`, serial)
	if errors.Is(err, sql.ErrNoRows) && number != "" {
		err = r.db.GetContext(ctx, &p, `SELECT * FROM equipment WHERE number = $1 LIMIT 1`, number)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEquipmentNotFound
	}
	return &p, err
}

func (r *Repos) GetFacility(ctx context.Context, id int64) (*domain.Facility, error) {
	var f domain.Facility
	err := r.db.GetContext(ctx, &f, `SELECT * FROM facilities WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrFacilityNotFound
	}
	return &f, err
}

// ListUsersByOrganization returns every user in the organization with their
// facility and equipment assignments loaded.
func (r *Repos) ListUsersByOrganization(ctx context.Context, orgID int64) ([]domain.User, error) {
	var users []domain.User
	if err := r.db.SelectContext(ctx, &users,
		`SELECT id, organization_id, email, role FROM users WHERE organization_id = $1 ORDER BY id`, orgID); err != nil {
		return nil, err
	}
	for i := range users {
		if err := r.db.SelectContext(ctx, &users[i].FacilityIDs,
			`SELECT facility_id FROM user_facilities WHERE user_id = $1`, users[i].ID); err != nil {
			return nil, err
		}
		if err := r.db.SelectContext(ctx, &users[i].EquipmentIDs,
			`SELECT equipment_id FROM user_equipment WHERE user_id = $1`, users[i].ID); err != nil {
			return nil, err
		}
	}
	return users, nil
}
