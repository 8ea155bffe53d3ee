// Package archive reads class files out of jars.
//
// An Archive lists the class entries of a zip container and hands out a
// decompressed stream for one entry at a time. Entries under META-INF/ are
// never considered: multi-release jars keep version-specific classes there
// (META-INF/versions/N/...) and they do not determine the baseline runtime.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/dendrascience/classver/classfile"
	"github.com/dendrascience/classver/internal/logging"
)

// MetadataDir is the reserved directory excluded from class scanning.
const MetadataDir = "META-INF/"

// ClassSuffix is the extension of class file entries.
const ClassSuffix = ".class"

// IsClassEntry reports whether an entry name is a candidate class file: it
// ends in ".class" and is not under MetadataDir. Matching is case-sensitive.
func IsClassEntry(name string) bool {
	if strings.HasSuffix(name, "/") {
		return false
	}
	return strings.HasSuffix(name, ClassSuffix) && !strings.HasPrefix(name, MetadataDir)
}

// FilterClassEntries returns the names accepted by IsClassEntry, preserving
// order.
func FilterClassEntries(names []string) []string {
	var out []string
	for _, n := range names {
		if IsClassEntry(n) {
			out = append(out, n)
		}
	}
	return out
}

// Archive is an opened jar.
//
// Only one entry may be read at a time: OpenEntry fails with ErrEntryBusy
// until the previous EntryReader is closed.
type Archive struct {
	zr      *zip.Reader
	files   map[string]*zip.File
	classes []*zip.File
	closer io.Closer
	log    *slog.Logger
	busy   *EntryReader
}

// Option configures an Archive.
type Option func(*Archive)

// WithLogger sets the logger used for trace output.
func WithLogger(l *slog.Logger) Option {
	return func(a *Archive) {
		a.log = l
	}
}

// Open checks the zip signature at offset 0 of r and opens it as an archive.
func Open(r io.ReaderAt, size int64, opts ...Option) (*Archive, error) {
	var magic [classfile.MagicSize]byte
	n, err := r.ReadAt(magic[:], 0)
	if n < len(magic) {
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		return nil, &classfile.InsufficientBytesError{Expected: len(magic), Actual: n}
	}
	if !classfile.IsZipMagic(magic[:]) {
		return nil, ErrNotAnArchive
	}

	zr, err := zip.NewReader(r, size)
	switch {
	case err == nil:
	case errors.Is(err, zip.ErrInsecurePath):
		// Names are only used for reporting; Unpack never writes to them.
	default:
		return nil, &FormatError{Err: err}
	}
	zr.RegisterDecompressor(zip.Deflate, flate.NewReader)

	a := &Archive{
		zr:    zr,
		files: make(map[string]*zip.File, len(zr.File)),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = logging.OrDiscard(a.log)
	for _, f := range zr.File {
		// OpenEntry resolves duplicated names to the first entry, same as
		// the JVM. Every duplicate still counts as a class entry.
		if _, ok := a.files[f.Name]; !ok {
			a.files[f.Name] = f
		} else {
			a.log.Debug("duplicate entry name", "entry", f.Name)
		}
		if !f.FileInfo().IsDir() && IsClassEntry(f.Name) {
			a.classes = append(a.classes, f)
		}
	}
	logging.Trace(a.log, "opened archive", "entries", len(zr.File))
	return a, nil
}

// OpenFile opens the named file as an archive. The returned Archive owns the
// file and must be closed.
func OpenFile(path string, opts ...Option) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrNotAnArchive)
	}
	a, err := Open(f, info.Size(), opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	a.closer = f
	return a, nil
}

// Close releases any open entry and the underlying file, if the archive owns
// one.
func (a *Archive) Close() error {
	if a.busy != nil {
		a.busy.Close()
	}
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// Entries returns every entry name in directory order.
func (a *Archive) Entries() []string {
	names := make([]string, len(a.zr.File))
	for i, f := range a.zr.File {
		names[i] = f.Name
	}
	return names
}

// ClassEntries returns the candidate class entries in directory order. A
// duplicated name is listed once per entry.
func (a *Archive) ClassEntries() []string {
	out := make([]string, len(a.classes))
	for i, f := range a.classes {
		out[i] = f.Name
	}
	return out
}

// RequireClassEntries is ClassEntries, failing with ErrNoClassFiles when the
// list is empty.
func (a *Archive) RequireClassEntries() ([]string, error) {
	names := a.ClassEntries()
	if len(names) == 0 {
		return nil, ErrNoClassFiles
	}
	return names, nil
}

// OpenEntry returns a reader over the decompressed contents of the named
// entry. The reader must be closed before the next call to OpenEntry.
func (a *Archive) OpenEntry(name string) (*EntryReader, error) {
	if a.busy != nil {
		return nil, fmt.Errorf("opening %q while %q is open: %w", name, a.busy.name, ErrEntryBusy)
	}
	f, ok := a.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return a.open(f)
}

func (a *Archive) open(f *zip.File) (*EntryReader, error) {
	if a.busy != nil {
		return nil, fmt.Errorf("opening %q while %q is open: %w", f.Name, a.busy.name, ErrEntryBusy)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, &FormatError{Entry: f.Name, Err: err}
	}
	logging.Trace(a.log, "opened entry", "entry", f.Name, "size", f.UncompressedSize64)
	e := &EntryReader{rc: rc, a: a, name: f.Name}
	a.busy = e
	return e, nil
}

// EntryReader streams one archive entry.
type EntryReader struct {
	rc   io.ReadCloser
	a    *Archive
	name string
}

// Name returns the entry name.
func (e *EntryReader) Name() string {
	return e.name
}

func (e *EntryReader) Read(p []byte) (int, error) {
	if e.rc == nil {
		return 0, fs.ErrClosed
	}
	n, err := e.rc.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		err = &FormatError{Entry: e.name, Err: err}
	}
	return n, err
}

// Close releases the entry so another can be opened. Closing twice is a
// no-op.
func (e *EntryReader) Close() error {
	if e.rc == nil {
		return nil
	}
	err := e.rc.Close()
	e.rc = nil
	if e.a.busy == e {
		e.a.busy = nil
	}
	return err
}

// ReadVersion opens the named entry, parses its class header and closes it.
func (a *Archive) ReadVersion(name string) (classfile.RawVersion, error) {
	f, ok := a.files[name]
	if !ok {
		return 0, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return a.readVersion(f)
}

func (a *Archive) readVersion(f *zip.File) (classfile.RawVersion, error) {
	e, err := a.open(f)
	if err != nil {
		return 0, err
	}
	defer e.Close()
	v, err := classfile.ParseHeader(e)
	if err != nil {
		return 0, fmt.Errorf("entry %q: %w", f.Name, err)
	}
	logging.Trace(a.log, "read class version", "entry", f.Name, "version", v.Version().String())
	return v, nil
}

// ClassVersion is the header version of one class entry.
type ClassVersion struct {
	Name    string
	Version classfile.RawVersion
}

// ClassVersions reads the version of every class entry in directory order,
// one entry at a time. The first unreadable entry stops the walk. It fails
// with ErrNoClassFiles when there are no class entries.
func (a *Archive) ClassVersions() ([]ClassVersion, error) {
	if _, err := a.RequireClassEntries(); err != nil {
		return nil, err
	}
	out := make([]ClassVersion, 0, len(a.classes))
	for _, f := range a.classes {
		v, err := a.readVersion(f)
		if err != nil {
			return nil, err
		}
		out = append(out, ClassVersion{Name: f.Name, Version: v})
	}
	return out, nil
}
