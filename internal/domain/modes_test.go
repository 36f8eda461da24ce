package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperatorCompare(t *testing.T) {
	assert.True(t, OpGreater.Compare(10, 5))
	assert.False(t, OpGreater.Compare(5, 5))
	assert.True(t, OpGreaterOrEqual.Compare(5, 5))
	assert.True(t, OpLess.Compare(4, 5))
	assert.True(t, OpLessOrEqual.Compare(5, 5))
	assert.True(t, OpEqual.Compare(5, 5))
	assert.False(t, Operator("").Compare(5, 5))
	assert.False(t, Operator("!=").Compare(4, 5))
}

func TestModeValidation(t *testing.T) {
	assert.True(t, WiringSinglePhase.Valid())
	assert.False(t, WiringMode("two_phase").Valid())
	assert.True(t, OilDifferential.Valid())
	assert.False(t, OilMode("").Valid())
	assert.True(t, PurgeNone.Valid())
	assert.True(t, RunHoursNotLogged.Valid())
	assert.True(t, UnitsMetric.Valid())
	assert.False(t, UnitSystem("si").Valid())
}

func TestMetricValue(t *testing.T) {
	cl := &ComputedLog{
		TotalLoss:      12.5,
		OtherLoss:      3.0,
		CondApproach:   6.0,
		LoadFactor:     85.0,
		FinalOilDif:    33.0,
		BearingTemp:    140.0,
		OutsideAirTemp: 88.0,
	}

	v, ok := MetricValue(cl, "effLoss")
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)

	v, ok = MetricValue(cl, "condApproach")
	assert.True(t, ok)
	assert.Equal(t, 6.0, v)

	v, ok = MetricValue(cl, "finalOilDif")
	assert.True(t, ok)
	assert.Equal(t, 33.0, v)

	_, ok = MetricValue(cl, "unknownMetric")
	assert.False(t, ok)
}
