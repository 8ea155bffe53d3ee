// Package classfile reads the version field of compiled Java class files.
//
// Only the first eight bytes of a class file are ever inspected:
//
//	bytes 0-3  magic, always CA FE BA BE
//	bytes 4-5  minor version (ignored)
//	bytes 6-7  major version, big-endian
//
// The major version is reported as a RawVersion and converted to the public
// Java release number with ToRelease. The package also sniffs byte prefixes
// to tell class files apart from zip containers (jars), independent of any
// file extension.
package classfile
