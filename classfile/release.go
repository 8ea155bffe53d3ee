package classfile

import (
	"fmt"
	"strconv"
)

// ReleaseOffset is the distance between class file major versions and Java
// release numbers (major 52 is Java 8).
const ReleaseOffset = 44

// Release is a public Java release number such as 8, 11 or 17.
//
// The zero value means no class was found. Releases derived from major
// versions below 45 are not special-cased and may be zero or negative.
type Release int

// Found reports whether r is a real release rather than the zero sentinel.
func (r Release) Found() bool {
	return r != 0
}

func (r Release) String() string {
	return "Java " + strconv.Itoa(int(r))
}

// ToRelease maps a raw class file version to its release.
func ToRelease(v RawVersion) Release {
	return Release(int(v) - ReleaseOffset)
}

// Aggregate returns the highest release among vs, or the zero Release when vs
// is empty. Callers must check Found before using the result.
func Aggregate(vs []RawVersion) Release {
	v, ok := MaxVersion(vs)
	if !ok {
		return 0
	}
	return v.Release
}

// Version is a raw class file version together with its release.
type Version struct {
	Raw     RawVersion
	Release Release
}

// String renders the version as "<raw> (Java <release>)".
func (v Version) String() string {
	return fmt.Sprintf("%d (%s)", v.Raw, v.Release)
}

// MaxVersion returns the highest version in vs. The boolean is false when vs
// is empty.
func MaxVersion(vs []RawVersion) (Version, bool) {
	if len(vs) == 0 {
		return Version{}, false
	}
	hi := vs[0]
	for _, v := range vs[1:] {
		if v > hi {
			hi = v
		}
	}
	return hi.Version(), true
}
