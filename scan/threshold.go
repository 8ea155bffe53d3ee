package scan

import (
	"slices"

	"github.com/dendrascience/classver/classfile"
)

// CheckCeiling fails with a *ThresholdExceededError naming every verdict
// release above ceiling. A nil ceiling never fails.
func CheckCeiling(ceiling *classfile.Release, verdicts []Verdict) error {
	if ceiling == nil {
		return nil
	}
	var offending []classfile.Release
	for _, v := range verdicts {
		if v.Version.Release > *ceiling {
			offending = append(offending, v.Version.Release)
		}
	}
	if len(offending) == 0 {
		return nil
	}
	slices.Sort(offending)
	return &ThresholdExceededError{
		Offending: slices.Compact(offending),
		Ceiling:   *ceiling,
	}
}
