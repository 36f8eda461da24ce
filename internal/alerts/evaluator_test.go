package alerts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantops/chillerwatch/internal/domain"
	"github.com/plantops/chillerwatch/internal/notify"
)

type fakeSource struct {
	users     []domain.User
	rules     map[int64][]domain.AlertRule
	usersErr  error
	rulesErr  error
	ruleCalls []int64
}

func (f *fakeSource) ListUsersByOrganization(context.Context, int64) ([]domain.User, error) {
	return f.users, f.usersErr
}

func (f *fakeSource) ListRulesByUser(_ context.Context, userID int64) ([]domain.AlertRule, error) {
	f.ruleCalls = append(f.ruleCalls, userID)
	return f.rules[userID], f.rulesErr
}

type captureDispatcher struct {
	sent []notify.Dispatch
	err  error
}

func (c *captureDispatcher) Send(_ context.Context, d notify.Dispatch) error {
	c.sent = append(c.sent, d)
	return c.err
}

func committedLog() *domain.ComputedLog {
	return &domain.ComputedLog{
		ID: 42, EquipmentID: 7, FacilityID: 3, OrganizationID: 1,
		ReadingTS: time.Date(2024, 6, 1, 19, 30, 0, 0, time.UTC),
		TotalLoss: 12.5, CondApproach: 6.0, BearingTemp: 140,
	}
}

func orgUser(id int64) domain.User {
	return domain.User{ID: id, OrganizationID: 1, Email: "ops@example.com", Role: domain.RoleOrganization}
}

func effLossRule(userID int64) domain.AlertRule {
	return domain.AlertRule{
		ID: 1, UserID: userID, Metric: "effLoss",
		WarnOp: domain.OpGreater, WarnThreshold: 5,
		AlertOp: domain.OpGreater, AlertThreshold: 10,
		NotifyEmail: true,
	}
}

func TestEvaluateAlertBeatsWarning(t *testing.T) {
	src := &fakeSource{
		users: []domain.User{orgUser(10)},
		rules: map[int64][]domain.AlertRule{10: {effLossRule(10)}},
	}
	disp := &captureDispatcher{}
	NewEvaluator(src, disp).Evaluate(context.Background(), committedLog(), "CH-1", "Plant A")

	require.Len(t, disp.sent, 1)
	d := disp.sent[0]
	// 12.5 crosses both thresholds; the alert severity wins.
	assert.Equal(t, "alert", d.Severity)
	assert.Equal(t, "effLoss", d.Metric)
	assert.InDelta(t, 12.5, d.Value, 1e-9)
	assert.Equal(t, []notify.Channel{notify.ChannelEmail}, d.Channels)
	assert.Equal(t, int64(10), d.UserID)
	assert.Equal(t, "ops@example.com", d.Recipient)
	assert.NotEmpty(t, d.ID)
	assert.Contains(t, d.Subject, "CH-1")
	assert.Contains(t, d.Message, "Plant A")
}

func TestEvaluateWarningOnly(t *testing.T) {
	rule := effLossRule(10)
	rule.AlertThreshold = 50
	src := &fakeSource{
		users: []domain.User{orgUser(10)},
		rules: map[int64][]domain.AlertRule{10: {rule}},
	}
	disp := &captureDispatcher{}
	NewEvaluator(src, disp).Evaluate(context.Background(), committedLog(), "CH-1", "Plant A")

	require.Len(t, disp.sent, 1)
	assert.Equal(t, "warning", disp.sent[0].Severity)
}

func TestEvaluateBelowThresholdsSendsNothing(t *testing.T) {
	rule := effLossRule(10)
	rule.WarnThreshold = 50
	rule.AlertThreshold = 80
	src := &fakeSource{
		users: []domain.User{orgUser(10)},
		rules: map[int64][]domain.AlertRule{10: {rule}},
	}
	disp := &captureDispatcher{}
	NewEvaluator(src, disp).Evaluate(context.Background(), committedLog(), "CH-1", "Plant A")
	assert.Empty(t, disp.sent)
}

func TestEvaluateUnknownMetricSkipped(t *testing.T) {
	rule := effLossRule(10)
	rule.Metric = "flutterValveDrift"
	src := &fakeSource{
		users: []domain.User{orgUser(10)},
		rules: map[int64][]domain.AlertRule{10: {rule}},
	}
	disp := &captureDispatcher{}
	NewEvaluator(src, disp).Evaluate(context.Background(), committedLog(), "CH-1", "Plant A")
	assert.Empty(t, disp.sent)
}

func TestEvaluateNoChannelsSendsNothing(t *testing.T) {
	rule := effLossRule(10)
	rule.NotifyEmail = false
	src := &fakeSource{
		users: []domain.User{orgUser(10)},
		rules: map[int64][]domain.AlertRule{10: {rule}},
	}
	disp := &captureDispatcher{}
	NewEvaluator(src, disp).Evaluate(context.Background(), committedLog(), "CH-1", "Plant A")
	assert.Empty(t, disp.sent)
}

func TestEvaluateRoleScoping(t *testing.T) {
	facUser := domain.User{ID: 20, Role: domain.RoleFacility, FacilityIDs: []int64{3}}
	wrongFac := domain.User{ID: 21, Role: domain.RoleFacility, FacilityIDs: []int64{9}}
	equipUser := domain.User{ID: 22, Role: domain.RoleEquipment, EquipmentIDs: []int64{7}}
	wrongEquip := domain.User{ID: 23, Role: domain.RoleEquipment, EquipmentIDs: []int64{8}}

	src := &fakeSource{
		users: []domain.User{facUser, wrongFac, equipUser, wrongEquip},
		rules: map[int64][]domain.AlertRule{
			20: {effLossRule(20)},
			21: {effLossRule(21)},
			22: {effLossRule(22)},
			23: {effLossRule(23)},
		},
	}
	disp := &captureDispatcher{}
	NewEvaluator(src, disp).Evaluate(context.Background(), committedLog(), "CH-1", "Plant A")

	// Only users scoped to facility 3 or equipment 7 are consulted at all.
	assert.Equal(t, []int64{20, 22}, src.ruleCalls)
	require.Len(t, disp.sent, 2)
	assert.Equal(t, int64(20), disp.sent[0].UserID)
	assert.Equal(t, int64(22), disp.sent[1].UserID)
}

func TestEvaluateSwallowsDispatchErrors(t *testing.T) {
	src := &fakeSource{
		users: []domain.User{orgUser(10), orgUser(11)},
		rules: map[int64][]domain.AlertRule{
			10: {effLossRule(10)},
			11: {effLossRule(11)},
		},
	}
	disp := &captureDispatcher{err: errors.New("smtp down")}
	NewEvaluator(src, disp).Evaluate(context.Background(), committedLog(), "CH-1", "Plant A")

	// A failing channel never stops the remaining users.
	assert.Len(t, disp.sent, 2)
}

func TestEvaluateSwallowsSourceErrors(t *testing.T) {
	src := &fakeSource{usersErr: errors.New("db down")}
	disp := &captureDispatcher{}
	NewEvaluator(src, disp).Evaluate(context.Background(), committedLog(), "CH-1", "Plant A")
	assert.Empty(t, disp.sent)
}
