package classfile

import (
	"encoding/binary"
	"io"
	"os"
)

// RawVersion is the major version stored in bytes 6-7 of a class file.
type RawVersion uint16

// Release converts the raw version to the public Java release number.
func (v RawVersion) Release() Release {
	return ToRelease(v)
}

// Version pairs the raw major version with its release.
func (v RawVersion) Version() Version {
	return Version{Raw: v, Release: ToRelease(v)}
}

// ParseHeader reads exactly HeaderSize bytes from r and returns the major
// version. Nothing past the header is read.
func ParseHeader(r io.Reader) (RawVersion, error) {
	var buf [HeaderSize]byte
	n, err := io.ReadFull(r, buf[:])
	switch {
	case err == nil:
	case err == io.EOF, err == io.ErrUnexpectedEOF:
		return 0, insufficient(HeaderSize, n)
	default:
		return 0, err
	}
	if !IsClassMagic(buf[:]) {
		return 0, ErrNotAClassFile
	}
	return RawVersion(binary.BigEndian.Uint16(buf[6:8])), nil
}

// ParseFile opens the named file and parses its header.
func ParseFile(path string) (RawVersion, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return ParseHeader(f)
}
