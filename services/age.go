package services

import (
	"github.com/LittleSteps/little-steps-backend/types"
)

// allAgeRanges is every bucket in the catalog, used when nothing is known
// about the child.
var allAgeRanges = []string{
	types.AgeRange0To3,
	types.AgeRange3To6,
	types.AgeRange6To12,
	types.AgeRange1To2,
	types.AgeRange2Plus,
	types.AgeRangeAll,
}

// ageRangeForDays maps a child's age in days to its catalog bucket.
func ageRangeForDays(ageDays int) string {
	switch {
	case ageDays <= 90:
		return types.AgeRange0To3
	case ageDays <= 180:
		return types.AgeRange3To6
	case ageDays <= 365:
		return types.AgeRange6To12
	case ageDays <= 730:
		return types.AgeRange1To2
	default:
		return types.AgeRange2Plus
	}
}

// stageForDays maps a child's age in days to a parenting stage.
func stageForDays(ageDays int) types.ParentingStage {
	switch {
	case ageDays <= 90:
		return types.StageNewborn
	case ageDays <= 365:
		return types.StageInfant
	default:
		return types.StageToddler
	}
}

// rangesForStage returns the buckets aliased by a parenting stage. An
// expecting parent has no bucket yet and gets the whole catalog.
func rangesForStage(stage types.ParentingStage) []string {
	switch stage {
	case types.StageNewborn:
		return []string{types.AgeRange0To3}
	case types.StageInfant:
		return []string{types.AgeRange3To6, types.AgeRange6To12}
	case types.StageToddler:
		return []string{types.AgeRange1To2, types.AgeRange2Plus}
	default:
		return nil
	}
}

// personalizedAgeRanges resolves the buckets for a profile: birth date first,
// stage alias second, whole catalog last. "all" is always included. With a
// birth date the filter carries both the day bucket and its stage alias, so
// a 200-day-old matches "6-12months" and "infant" entries alike.
func personalizedAgeRanges(profile *types.UserProfile, ageDays int) []string {
	if ageDays >= 0 {
		return []string{
			ageRangeForDays(ageDays),
			string(stageForDays(ageDays)),
			types.AgeRangeAll,
		}
	}
	if profile != nil && profile.ParentingStage != nil {
		if ranges := rangesForStage(*profile.ParentingStage); ranges != nil {
			return append(ranges, types.AgeRangeAll)
		}
	}
	return allAgeRanges
}
