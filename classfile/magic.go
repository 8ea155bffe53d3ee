package classfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// ClassMagic is the fixed prefix of every class file.
var ClassMagic = []byte{0xCA, 0xFE, 0xBA, 0xBE}

// ZipMagic is the zip local-file-header signature ("PK\x03\x04").
//
// Jars only use the "standard" zip magic number; the spanned and empty
// archive signatures are not accepted.
var ZipMagic = []byte{0x50, 0x4B, 0x03, 0x04}

const (
	// HeaderSize is the number of bytes needed to read the major version.
	HeaderSize = 8
	// MagicSize is the length of both magic prefixes.
	MagicSize = 4
)

// Kind is the type of a file as determined by its leading bytes.
type Kind int

const (
	Unknown Kind = iota
	ClassFile
	ZipContainer
)

func (k Kind) String() string {
	switch k {
	case ClassFile:
		return "class file"
	case ZipContainer:
		return "zip container"
	default:
		return "unknown"
	}
}

// IsClassMagic reports whether b starts with the class file magic.
func IsClassMagic(b []byte) bool {
	return bytes.HasPrefix(b, ClassMagic)
}

// IsZipMagic reports whether b starts with the zip local-file-header signature.
func IsZipMagic(b []byte) bool {
	return bytes.HasPrefix(b, ZipMagic)
}

// Sniff classifies r by its first bytes. It consumes up to HeaderSize bytes
// from r, so callers that want the version afterwards must reopen the source.
//
// A source too short for the check it needs reports an
// *InsufficientBytesError rather than Unknown.
func Sniff(r io.Reader) (Kind, error) {
	buf := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, buf)
	switch {
	case err == nil:
	case err == io.EOF, err == io.ErrUnexpectedEOF:
	default:
		return Unknown, err
	}
	if n < MagicSize {
		return Unknown, insufficient(MagicSize, n)
	}
	if IsZipMagic(buf[:n]) {
		return ZipContainer, nil
	}
	if n < HeaderSize {
		return Unknown, insufficient(HeaderSize, n)
	}
	if IsClassMagic(buf) {
		return ClassFile, nil
	}
	return Unknown, nil
}

// SniffFile opens the named file and sniffs it.
func SniffFile(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()
	k, err := Sniff(f)
	if err != nil {
		return Unknown, fmt.Errorf("sniffing %s: %w", path, err)
	}
	return k, nil
}
