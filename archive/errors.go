package archive

import (
	"errors"
	"fmt"
)

// Sentinel errors for package archive.
var (
	// ErrNotAnArchive is returned when the first four bytes are not the zip
	// local-file-header signature.
	ErrNotAnArchive = errors.New("not a jar/zip archive")

	// ErrArchiveFormat matches any *FormatError.
	ErrArchiveFormat = errors.New("invalid archive")

	// ErrNoClassFiles is returned when an archive has no qualifying class
	// entries.
	ErrNoClassFiles = errors.New("no class files found")

	// ErrEntryBusy is returned by OpenEntry while another entry reader is
	// still open.
	ErrEntryBusy = errors.New("another archive entry is still open")
)

// FormatError wraps a failure reported by the zip reader for a container
// that has the right signature but cannot be read.
type FormatError struct {
	Entry string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("invalid archive: entry %q: %v", e.Entry, e.Err)
	}
	return fmt.Sprintf("invalid archive: %v", e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrArchiveFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrArchiveFormat
}
