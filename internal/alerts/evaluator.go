package alerts

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/plantops/chillerwatch/internal/domain"
	"github.com/plantops/chillerwatch/internal/notify"
)

// RuleSource provides the user and rule sets of one organization.
type RuleSource interface {
	ListUsersByOrganization(ctx context.Context, orgID int64) ([]domain.User, error)
	ListRulesByUser(ctx context.Context, userID int64) ([]domain.AlertRule, error)
}

// Evaluator runs per-user threshold rules against one newly committed log.
// Everything here is best-effort: a failure for one user or rule is logged
// and skipped, and the ingestion that triggered the evaluation never sees it.
type Evaluator struct {
	source     RuleSource
	dispatcher notify.Dispatcher
}

func NewEvaluator(source RuleSource, dispatcher notify.Dispatcher) *Evaluator {
	return &Evaluator{source: source, dispatcher: dispatcher}
}

// Evaluate checks every eligible user's rules against the committed log and
// sends one dispatch per triggered rule.
func (e *Evaluator) Evaluate(ctx context.Context, cl *domain.ComputedLog, equipName, facilityName string) {
	users, err := e.source.ListUsersByOrganization(ctx, cl.OrganizationID)
	if err != nil {
		log.Error().Err(err).Int64("organization_id", cl.OrganizationID).Msg("alert evaluation: user load failed")
		return
	}
	for _, u := range users {
		if !eligible(&u, cl) {
			continue
		}
		rules, err := e.source.ListRulesByUser(ctx, u.ID)
		if err != nil {
			log.Error().Err(err).Int64("user_id", u.ID).Msg("alert evaluation: rule load failed")
			continue
		}
		for _, rule := range rules {
			e.evaluateRule(ctx, cl, &u, &rule, equipName, facilityName)
		}
	}
}

// eligible applies the role-scope check: organization-wide roles always match,
// narrower roles match only their assigned facilities or equipment.
func eligible(u *domain.User, cl *domain.ComputedLog) bool {
	switch u.Role {
	case domain.RoleOrganization:
		return true
	case domain.RoleFacility:
		return slices.Contains(u.FacilityIDs, cl.FacilityID)
	case domain.RoleEquipment:
		return slices.Contains(u.EquipmentIDs, cl.EquipmentID)
	}
	return false
}

func (e *Evaluator) evaluateRule(ctx context.Context, cl *domain.ComputedLog, u *domain.User, rule *domain.AlertRule, equipName, facilityName string) {
	value, ok := domain.MetricValue(cl, rule.Metric)
	if !ok {
		return
	}

	// Alert wins over warning when both conditions hold.
	var severity string
	switch {
	case rule.AlertOp.Compare(value, rule.AlertThreshold):
		severity = "alert"
	case rule.WarnOp.Compare(value, rule.WarnThreshold):
		severity = "warning"
	default:
		return
	}

	var channels []notify.Channel
	if rule.NotifyEmail {
		channels = append(channels, notify.ChannelEmail)
	}
	if rule.NotifyPush {
		channels = append(channels, notify.ChannelPush)
	}
	if len(channels) == 0 {
		return
	}

	d := notify.Dispatch{
		ID:          uuid.NewString(),
		UserID:      u.ID,
		Recipient:   u.Email,
		Channels:    channels,
		Severity:    severity,
		Subject:     fmt.Sprintf("Chiller %s: %s %s", equipName, rule.Metric, severity),
		Metric:      rule.Metric,
		Value:       value,
		EquipmentID: cl.EquipmentID,
		FacilityID:  cl.FacilityID,
		Message: fmt.Sprintf(
			"Equipment: %s\nFacility: %s\nMetric: %s\nValue: %.4f\nSeverity: %s\nReading time: %s\n",
			equipName, facilityName, rule.Metric, value, severity,
			cl.ReadingTS.Format(time.RFC3339)),
	}
	if err := e.dispatcher.Send(ctx, d); err != nil {
		log.Error().Err(err).
			Int64("user_id", u.ID).
			Str("metric", rule.Metric).
			Str("severity", severity).
			Msg("alert dispatch failed")
	}
}
