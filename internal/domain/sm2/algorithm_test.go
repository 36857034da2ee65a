package sm2

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSuccessIntervalProgression(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		intervalDays int
		easeFactor   float64
		quality      int
		wantInterval int
	}{
		{
			name:         "first review goes to one day",
			intervalDays: 0,
			easeFactor:   2.5,
			quality:      5,
			wantInterval: 1,
		},
		{
			name:         "second review goes to six days",
			intervalDays: 1,
			easeFactor:   2.5,
			quality:      5,
			wantInterval: 6,
		},
		{
			name:         "later reviews multiply by the new ease factor",
			intervalDays: 6,
			easeFactor:   2.5,
			quality:      5,
			// quality 5 leaves EF at 2.6 (2.5 + 0.1), so 6 * 2.6 = 15.6 -> 16
			wantInterval: 16,
		},
		{
			name:         "quality 3 still counts as success",
			intervalDays: 0,
			easeFactor:   2.5,
			quality:      3,
			wantInterval: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := Compute(tc.intervalDays, tc.easeFactor, tc.quality)
			assert.Equal(t, tc.wantInterval, result.IntervalDays)
			assert.Equal(t, successFamiliarityDelta, result.FamiliarityDelta)
			assert.GreaterOrEqual(t, result.EaseFactor, minEaseFactor)
		})
	}
}

func TestComputeEaseFactorFormula(t *testing.T) {
	t.Parallel()

	// EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02))
	testCases := []struct {
		quality int
		wantEF  float64
	}{
		{quality: 5, wantEF: 2.6},
		{quality: 4, wantEF: 2.5},
		{quality: 3, wantEF: 2.36},
	}

	for _, tc := range testCases {
		result := Compute(6, 2.5, tc.quality)
		assert.InDelta(t, tc.wantEF, result.EaseFactor, 1e-9,
			"quality %d", tc.quality)
	}
}

func TestComputeFailureResetsInterval(t *testing.T) {
	t.Parallel()

	for _, quality := range []int{0, 1, 2} {
		for _, interval := range []int{0, 1, 6, 30, 365} {
			result := Compute(interval, 2.5, quality)
			require.Equal(t, 1, result.IntervalDays,
				"quality %d interval %d must hard-reset to one day", quality, interval)
			assert.Equal(t, failureFamiliarityDelta, result.FamiliarityDelta)
			assert.InDelta(t, 2.3, result.EaseFactor, 1e-9)
		}
	}
}

func TestComputeEaseFactorFloorIsIdempotent(t *testing.T) {
	t.Parallel()

	// Repeated failures from any starting point never drive EF below 1.3.
	for _, startEF := range []float64{2.5, 1.5, 1.35, 1.3} {
		ef := startEF
		for i := 0; i < 50; i++ {
			result := Compute(1, ef, QualityBlackout)
			require.GreaterOrEqual(t, result.EaseFactor, minEaseFactor,
				"iteration %d from start %v", i, startEF)
			ef = result.EaseFactor
		}
		assert.InDelta(t, minEaseFactor, ef, 1e-9)
	}
}

func TestComputeSuccessNeverViolatesFloor(t *testing.T) {
	t.Parallel()

	// Low success grades shrink EF but must respect the floor too.
	for _, quality := range []int{3, 4, 5} {
		ef := 1.3
		for i := 0; i < 20; i++ {
			result := Compute(6, ef, quality)
			require.GreaterOrEqual(t, result.EaseFactor, minEaseFactor)
			ef = result.EaseFactor
		}
	}
}

func TestComputeIntervalRounding(t *testing.T) {
	t.Parallel()

	// 10 * 1.3 = 13 exactly; 7 * 2.36 = 16.52 -> 17.
	result := Compute(10, 1.3, 3)
	wantEF := 1.3 + (0.1 - 2*(0.08+2*0.02))
	if wantEF < 1.3 {
		wantEF = 1.3
	}
	assert.Equal(t, int(math.Round(10*wantEF)), result.IntervalDays)

	result = Compute(7, 2.5, 3)
	assert.Equal(t, 17, result.IntervalDays)
}
