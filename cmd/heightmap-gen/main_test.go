package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureSkipsNoData(t *testing.T) {
	stats, err := measure([]float64{10, math.NaN(), 30, 20, math.NaN()})
	require.NoError(t, err)

	assert.Equal(t, 10.0, stats.min)
	assert.Equal(t, 30.0, stats.max)
	assert.Equal(t, 20.0, stats.mean)
	assert.Equal(t, 3, stats.valid)
}

func TestMeasureAllNoDataFails(t *testing.T) {
	_, err := measure([]float64{math.NaN(), math.NaN()})
	assert.Error(t, err)
}

func TestRescaleSpansFullRange(t *testing.T) {
	samples := []float64{10, 20, 30}
	stats, err := measure(samples)
	require.NoError(t, err)

	scaled := rescale(samples, stats)

	assert.Equal(t, []uint8{0, 127, 255}, scaled)
}

func TestRescaleNoDataLandsAtZero(t *testing.T) {
	samples := []float64{10, math.NaN(), 30}
	stats, err := measure(samples)
	require.NoError(t, err)

	scaled := rescale(samples, stats)

	assert.Equal(t, uint8(0), scaled[1])
	assert.Equal(t, uint8(255), scaled[2])
}

func TestRescaleFlatRangeIsUniform(t *testing.T) {
	samples := []float64{42, 42, math.NaN(), 42}
	stats, err := measure(samples)
	require.NoError(t, err)

	scaled := rescale(samples, stats)

	assert.Equal(t, []uint8{128, 128, 128, 128}, scaled)
}
