package scan

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dendrascience/classver/classfile"
)

func verdictsFor(raws ...classfile.RawVersion) []Verdict {
	vs := make([]Verdict, len(raws))
	for i, r := range raws {
		vs[i] = Verdict{Version: r.Version()}
	}
	return vs
}

func TestCheckCeiling(t *testing.T) {
	release := func(r classfile.Release) *classfile.Release { return &r }

	tests := []struct {
		name     string
		ceiling  *classfile.Release
		verdicts []Verdict
		want     []classfile.Release
	}{
		{
			name:     "no ceiling",
			verdicts: verdictsFor(65, 61),
		},
		{
			name:     "all below",
			ceiling:  release(17),
			verdicts: verdictsFor(52, 55, 61),
		},
		{
			name:     "equal is allowed",
			ceiling:  release(11),
			verdicts: verdictsFor(55),
		},
		{
			name:     "sorted and deduplicated",
			ceiling:  release(11),
			verdicts: verdictsFor(65, 61, 52, 61, 65, 56),
			want:     []classfile.Release{12, 17, 21},
		},
		{
			name:    "no verdicts",
			ceiling: release(8),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCeiling(tt.ceiling, tt.verdicts)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var te *ThresholdExceededError
			if !errors.As(err, &te) {
				t.Fatalf("expected *ThresholdExceededError, got %v", err)
			}
			if !errors.Is(err, ErrThresholdExceeded) {
				t.Error("errors.Is(err, ErrThresholdExceeded) = false")
			}
			if diff := cmp.Diff(tt.want, te.Offending); diff != "" {
				t.Errorf("offending mismatch (-want +got):\n%s", diff)
			}
			if te.Ceiling != *tt.ceiling {
				t.Errorf("ceiling = %v, want %v", te.Ceiling, *tt.ceiling)
			}
		})
	}
}

func TestThresholdExceededMessage(t *testing.T) {
	err := &ThresholdExceededError{Offending: []classfile.Release{17, 21}, Ceiling: 11}
	want := "found classes requiring Java 17, 21, higher than the maximum of Java 11"
	if got := err.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
