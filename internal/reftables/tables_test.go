package reftables

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantops/chillerwatch/internal/domain"
)

func TestTempAtPressureInterpolates(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	// Exact sample point.
	temp, ok := m.RefrigerantTempAtPressure(ctx, "R-134a", 45.4)
	require.True(t, ok)
	assert.InDelta(t, 60.0, temp, 1e-9)

	// Midway between the 35.0 and 45.4 samples.
	temp, ok = m.RefrigerantTempAtPressure(ctx, "R-134a", 40.2)
	require.True(t, ok)
	assert.InDelta(t, 55.0, temp, 1e-9)
}

func TestTempAtPressureClampsOutOfRange(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	temp, ok := m.RefrigerantTempAtPressure(ctx, "r-22", 1.0)
	require.True(t, ok)
	assert.InDelta(t, 10.0, temp, 1e-9)

	temp, ok = m.RefrigerantTempAtPressure(ctx, "r-22", 500.0)
	require.True(t, ok)
	assert.InDelta(t, 120.0, temp, 1e-9)
}

func TestPressureAtTempIsInverse(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	pres, ok := m.RefrigerantPressureAtTemp(ctx, "r-134a", 90)
	require.True(t, ok)
	assert.InDelta(t, 86.7, pres, 1e-9)

	// Low-pressure curves run below atmospheric.
	pres, ok = m.RefrigerantPressureAtTemp(ctx, "r-123", 30)
	require.True(t, ok)
	assert.InDelta(t, -10.4, pres, 1e-9)
}

func TestRefrigerantNameNormalization(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for _, name := range []string{"R-514A", " r-514a ", "r-514A"} {
		_, ok := m.RefrigerantTempAtPressure(ctx, name, 5.0)
		assert.True(t, ok, name)
	}

	_, ok := m.RefrigerantTempAtPressure(ctx, "r-999", 5.0)
	assert.False(t, ok)
}

func TestAltitudeCorrectionSteps(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	cases := []struct {
		altitude float64
		units    domain.UnitSystem
		factor   float64
	}{
		{0, domain.UnitsImperial, 1.0},
		{999, domain.UnitsImperial, 1.0},
		{1000, domain.UnitsImperial, 0.97},
		{2500, domain.UnitsImperial, 0.93},
		{12000, domain.UnitsImperial, 0.69},
		{450, domain.UnitsMetric, 0.97},
		{3000, domain.UnitsMetric, 0.69},
	}
	for _, tc := range cases {
		factor, ok := m.AltitudeCorrection(ctx, tc.altitude, tc.units)
		require.True(t, ok)
		assert.InDelta(t, tc.factor, factor, 1e-9)
	}

	_, ok := m.AltitudeCorrection(ctx, 1000, domain.UnitSystem("nautical"))
	assert.False(t, ok)
}
