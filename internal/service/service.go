package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/plantops/chillerwatch/internal/alerts"
	"github.com/plantops/chillerwatch/internal/domain"
	"github.com/plantops/chillerwatch/internal/engine"
	"github.com/plantops/chillerwatch/internal/notify"
	"github.com/plantops/chillerwatch/internal/repository"
)

// The stores are narrow interfaces over the sqlx repos so the pipeline is
// testable against in-memory fakes.

type LogStore interface {
	Create(ctx context.Context, cl *domain.ComputedLog) error
	Update(ctx context.Context, cl *domain.ComputedLog) error
	GetByID(ctx context.Context, id int64) (*domain.ComputedLog, error)
	FindByKey(ctx context.Context, equipmentID int64, ts time.Time, excludeID int64) (bool, error)
	FindNearestBefore(ctx context.Context, equipmentID int64, ts time.Time, excludeID int64) (*domain.ComputedLog, error)
	FindNearestAfter(ctx context.Context, equipmentID int64, ts time.Time, excludeID int64) (*domain.ComputedLog, error)
	SoftDelete(ctx context.Context, id int64) error
}

type QuarantineStore interface {
	Create(ctx context.Context, q *domain.QuarantinedReading) error
}

type TimelineStore interface {
	Append(ctx context.Context, e *domain.TimelineEvent) error
}

type ProfileStore interface {
	GetEquipment(ctx context.Context, id int64) (*domain.EquipmentProfile, error)
	FindEquipment(ctx context.Context, serial, number string) (*domain.EquipmentProfile, error)
	GetFacility(ctx context.Context, id int64) (*domain.Facility, error)
}

type AlertEvaluator interface {
	Evaluate(ctx context.Context, cl *domain.ComputedLog, equipName, facilityName string)
}

type Services struct {
	Repos    *repository.Repos
	Readings *ReadingService
	Imports  *ImportService
}

// ruleSource adapts the repos to the alert evaluator's RuleSource.
type ruleSource struct {
	repos *repository.Repos
}

func (s ruleSource) ListUsersByOrganization(ctx context.Context, orgID int64) ([]domain.User, error) {
	return s.repos.ListUsersByOrganization(ctx, orgID)
}

func (s ruleSource) ListRulesByUser(ctx context.Context, userID int64) ([]domain.AlertRule, error) {
	return s.repos.Rules.ListByUser(ctx, userID)
}

func New(db *sqlx.DB, ref engine.RefLookup, dispatcher notify.Dispatcher, alertsEnabled bool) *Services {
	repos := repository.New(db)
	readings := &ReadingService{
		logs:          repos.Logs,
		quarantine:    repos.Quarantine,
		timeline:      repos.Timeline,
		profiles:      repos,
		ref:           ref,
		alerts:        alerts.NewEvaluator(ruleSource{repos: repos}, dispatcher),
		alertsEnabled: alertsEnabled,
	}
	return &Services{
		Repos:    repos,
		Readings: readings,
		Imports:  &ImportService{readings: readings, profiles: repos, quarantine: repos.Quarantine, timeline: repos.Timeline},
	}
}
