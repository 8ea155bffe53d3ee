// Package scan works out the Java release required by class files and jars.
//
// A Scanner takes each input path through one of three routes chosen by file
// name: ".class" files are parsed directly, ".jar" files are opened as
// archives and every class entry is parsed, and anything else is tried as a
// class file first and as an archive second. Inputs are handled one at a time
// in the order given.
package scan

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dendrascience/classver/archive"
	"github.com/dendrascience/classver/classfile"
	"github.com/dendrascience/classver/internal/logging"
)

// Route is the path an input takes through the scanner.
type Route int

const (
	// RouteSniff tries the class route, then the archive route.
	RouteSniff Route = iota
	RouteClass
	RouteArchive
)

func (r Route) String() string {
	switch r {
	case RouteClass:
		return "class"
	case RouteArchive:
		return "archive"
	default:
		return "sniff"
	}
}

// RouteFor picks a route from the file name alone.
func RouteFor(path string) Route {
	switch {
	case strings.HasSuffix(path, ".jar"):
		return RouteArchive
	case strings.HasSuffix(path, archive.ClassSuffix):
		return RouteClass
	default:
		return RouteSniff
	}
}

// Verdict is the result for one input.
type Verdict struct {
	Path string
	// Route is RouteClass or RouteArchive, whichever produced the version.
	Route   Route
	Version classfile.Version
	// Classes is the number of class files examined.
	Classes int
}

func (v Verdict) String() string {
	if v.Route == RouteArchive {
		return fmt.Sprintf("%s: %s [%d classes]", v.Path, v.Version, v.Classes)
	}
	return fmt.Sprintf("%s: %s", v.Path, v.Version)
}

// Options configures a Scanner.
type Options struct {
	Logger *slog.Logger
	// Unpack extracts each archive's class entries into a scratch directory
	// and parses them from disk instead of streaming them.
	Unpack bool
	// TempDir is the parent of scratch directories. Empty means os.TempDir.
	TempDir string
	// KeepGoing makes Run record failures and continue with the next input
	// instead of stopping at the first one.
	KeepGoing bool
	// OnVerdict, if set, is called by Run as soon as each verdict is known.
	OnVerdict func(Verdict)
}

// Scanner classifies inputs. It holds no state between inputs.
type Scanner struct {
	opts Options
	log  *slog.Logger
}

// New returns a Scanner using opts.
func New(opts Options) *Scanner {
	return &Scanner{opts: opts, log: logging.OrDiscard(opts.Logger)}
}

// Run classifies every path in order. Without KeepGoing it returns the
// verdicts so far and the first error. With KeepGoing it returns every
// successful verdict and all failures joined.
func (s *Scanner) Run(paths []string) ([]Verdict, error) {
	var verdicts []Verdict
	var errs []error
	for _, p := range paths {
		v, err := s.Classify(p)
		if err != nil {
			if !s.opts.KeepGoing {
				return verdicts, err
			}
			s.log.Warn("skipping input", "path", p, "reason", err)
			errs = append(errs, err)
			continue
		}
		if s.opts.OnVerdict != nil {
			s.opts.OnVerdict(v)
		}
		verdicts = append(verdicts, v)
	}
	return verdicts, errors.Join(errs...)
}

// Classify produces the verdict for a single input. Failures are returned as
// *PathError.
func (s *Scanner) Classify(path string) (Verdict, error) {
	route := RouteFor(path)
	s.log.Debug("classifying input", "path", path, "route", route.String())

	var v Verdict
	var err error
	switch route {
	case RouteClass:
		v, err = s.scanClass(path)
	case RouteArchive:
		v, err = s.scanArchive(path)
	default:
		v, err = s.sniff(path)
	}
	if err != nil {
		return Verdict{}, &PathError{Path: path, Err: err}
	}
	s.log.Debug("classified input", "path", path, "route", v.Route.String(), "version", v.Version.String())
	return v, nil
}

// outcome is the typed result of one attempt on the sniff route.
type outcome int

const (
	matched outcome = iota
	// wrongFormat means the input is readable but not of the attempted kind.
	wrongFormat
	failed
)

func (s *Scanner) sniff(path string) (Verdict, error) {
	v, out, classErr := s.tryClass(path)
	switch out {
	case matched:
		return v, nil
	case failed:
		return Verdict{}, classErr
	}
	s.log.Debug("not a class file, trying as a jar", "path", path)

	v, out, archiveErr := s.tryArchive(path)
	switch out {
	case matched:
		return v, nil
	case failed:
		return Verdict{}, archiveErr
	}
	return Verdict{}, &UnrecognizedInputError{ClassErr: classErr, ArchiveErr: archiveErr}
}

func (s *Scanner) tryClass(path string) (Verdict, outcome, error) {
	v, err := s.scanClass(path)
	switch {
	case err == nil:
		return v, matched, nil
	case errors.Is(err, classfile.ErrNotAClassFile):
		return Verdict{}, wrongFormat, err
	default:
		return Verdict{}, failed, err
	}
}

func (s *Scanner) tryArchive(path string) (Verdict, outcome, error) {
	v, err := s.scanArchive(path)
	switch {
	case err == nil:
		return v, matched, nil
	case errors.Is(err, archive.ErrNotAnArchive):
		return Verdict{}, wrongFormat, err
	default:
		return Verdict{}, failed, err
	}
}

func (s *Scanner) scanClass(path string) (Verdict, error) {
	raw, err := classfile.ParseFile(path)
	if err != nil {
		return Verdict{}, err
	}
	return Verdict{Path: path, Route: RouteClass, Version: raw.Version(), Classes: 1}, nil
}

func (s *Scanner) scanArchive(path string) (Verdict, error) {
	a, err := archive.OpenFile(path, archive.WithLogger(s.log))
	if err != nil {
		return Verdict{}, err
	}
	defer a.Close()

	var raws []classfile.RawVersion
	if s.opts.Unpack {
		raws, err = s.unpacked(a)
	} else {
		raws, err = s.streamed(a)
	}
	if err != nil {
		return Verdict{}, err
	}

	top, ok := classfile.MaxVersion(raws)
	if !ok {
		return Verdict{}, archive.ErrNoClassFiles
	}
	s.log.Debug("largest class version in archive", "path", path, "version", top.String(), "classes", len(raws))
	return Verdict{Path: path, Route: RouteArchive, Version: top, Classes: len(raws)}, nil
}

// streamed reads the header of every class entry, one entry at a time.
func (s *Scanner) streamed(a *archive.Archive) ([]classfile.RawVersion, error) {
	cvs, err := a.ClassVersions()
	if err != nil {
		return nil, err
	}
	raws := make([]classfile.RawVersion, len(cvs))
	for i, cv := range cvs {
		raws[i] = cv.Version
	}
	return raws, nil
}

// unpacked extracts the class entries into a scratch directory that is
// removed before returning, whatever the outcome.
func (s *Scanner) unpacked(a *archive.Archive) (raws []classfile.RawVersion, err error) {
	dir, err := os.MkdirTemp(s.opts.TempDir, "classver-")
	if err != nil {
		return nil, err
	}
	logging.Trace(s.log, "created scratch directory", "dir", dir)
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			s.log.Warn("failed to remove scratch directory", "dir", dir, "reason", rmErr)
		}
	}()

	s.log.Debug("unpacking archive", "dir", dir)
	entries, err := a.Unpack(dir)
	if err != nil {
		return nil, err
	}
	raws = make([]classfile.RawVersion, 0, len(entries))
	for _, e := range entries {
		v, err := classfile.ParseFile(e.Path)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Name, err)
		}
		raws = append(raws, v)
	}
	return raws, nil
}
