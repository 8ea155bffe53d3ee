package scan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dendrascience/classver/classfile"
)

// Sentinel errors for package scan.
var (
	// ErrUnrecognizedInput matches any *UnrecognizedInputError.
	ErrUnrecognizedInput = errors.New("neither a class file nor a jar")

	// ErrThresholdExceeded matches any *ThresholdExceededError.
	ErrThresholdExceeded = errors.New("maximum java release exceeded")
)

// PathError records the input path a failure belongs to.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// UnrecognizedInputError is returned for a file that failed both the class
// file and the archive attempt on format grounds.
type UnrecognizedInputError struct {
	// ClassErr and ArchiveErr are the wrong-format errors of each attempt.
	ClassErr   error
	ArchiveErr error
}

func (e *UnrecognizedInputError) Error() string {
	return fmt.Sprintf("%v (%v; %v)", ErrUnrecognizedInput, e.ClassErr, e.ArchiveErr)
}

// Is reports whether target is ErrUnrecognizedInput.
func (e *UnrecognizedInputError) Is(target error) bool {
	return target == ErrUnrecognizedInput
}

// ThresholdExceededError lists every release above the ceiling, sorted and
// without duplicates.
type ThresholdExceededError struct {
	Offending []classfile.Release
	Ceiling   classfile.Release
}

func (e *ThresholdExceededError) Error() string {
	rs := make([]string, len(e.Offending))
	for i, r := range e.Offending {
		rs[i] = fmt.Sprint(int(r))
	}
	return fmt.Sprintf("found classes requiring Java %s, higher than the maximum of %s",
		strings.Join(rs, ", "), e.Ceiling)
}

// Is reports whether target is ErrThresholdExceeded.
func (e *ThresholdExceededError) Is(target error) bool {
	return target == ErrThresholdExceeded
}
