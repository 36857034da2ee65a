// Package sm2 implements the fixed-policy SM-2 spaced repetition algorithm
// used to schedule vocabulary reviews.
package sm2

import "math"

// Quality grades for a graded review event, on the classic SM-2 0-5 scale.
// Only the grades actually produced by the review flow are named here.
const (
	// QualityBlackout is a complete failure: self-rated "unknown", or
	// self-rated "known" but the follow-up test was answered wrong.
	QualityBlackout = 0

	// QualityFuzzy is a half-remembered word (self-rated "fuzzy").
	QualityFuzzy = 1

	// QualityPerfect is a confirmed recall: self-rated "known" and the
	// follow-up test answered correctly.
	QualityPerfect = 5

	// successThreshold is the grade at or above which a review counts
	// as a success.
	successThreshold = 3
)

// Easiness factor bounds and familiarity deltas of the fixed policy.
const (
	minEaseFactor = 1.3

	// Flat familiarity adjustments: no gradation between success grades.
	successFamiliarityDelta = 15
	failureFamiliarityDelta = -20
)

// Result is the output of one SM-2 computation: the next interval, the
// adjusted easiness factor, and the signed familiarity adjustment the
// caller applies (and clamps) to the entry's familiarity score.
type Result struct {
	IntervalDays     int
	EaseFactor       float64
	FamiliarityDelta int
}

// Compute applies the SM-2 variant to the current scheduling state and a
// quality grade, returning the next state.
//
// It is a pure function: no I/O, no shared state, and no error returns.
// Inputs are pre-validated by callers — intervalDays >= 0,
// easeFactor >= 1.3, quality in [0,5]; violating that is a caller bug,
// not a runtime condition to recover from.
//
// On success (quality >= 3) the easiness factor moves by the classic SM-2
// adjustment and the interval progresses 0 -> 1 -> 6 -> round(i * ef').
// On failure the interval hard-resets to one day and the easiness factor
// drops by 0.2. The factor never goes below 1.3 in either direction.
func Compute(intervalDays int, easeFactor float64, quality int) Result {
	if quality >= successThreshold {
		q := float64(quality)
		newEF := easeFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
		if newEF < minEaseFactor {
			newEF = minEaseFactor
		}

		var newInterval int
		switch intervalDays {
		case 0:
			newInterval = 1
		case 1:
			newInterval = 6
		default:
			newInterval = int(math.Round(float64(intervalDays) * newEF))
		}

		return Result{
			IntervalDays:     newInterval,
			EaseFactor:       newEF,
			FamiliarityDelta: successFamiliarityDelta,
		}
	}

	newEF := easeFactor - 0.2
	if newEF < minEaseFactor {
		newEF = minEaseFactor
	}

	return Result{
		IntervalDays:     1,
		EaseFactor:       newEF,
		FamiliarityDelta: failureFamiliarityDelta,
	}
}
