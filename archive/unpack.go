package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// UnpackedEntry records where Unpack wrote a class entry.
type UnpackedEntry struct {
	// Name is the entry name inside the archive.
	Name string
	// Path is the extracted file.
	Path string
}

// Unpack extracts the class entries into dir, one at a time, and returns
// them in directory order. Each entry gets its own file named by its position
// in the archive, so entries whose names resolve to the same path, or to a
// path below another entry, never overwrite each other and names cannot
// escape dir.
func (a *Archive) Unpack(dir string) ([]UnpackedEntry, error) {
	if _, err := a.RequireClassEntries(); err != nil {
		return nil, err
	}
	out := make([]UnpackedEntry, 0, len(a.classes))
	for i, f := range a.classes {
		dest := filepath.Join(dir, fmt.Sprintf("%06d%s", i, ClassSuffix))
		if err := a.extract(f, dest); err != nil {
			return nil, err
		}
		out = append(out, UnpackedEntry{Name: f.Name, Path: dest})
	}
	return out, nil
}

func (a *Archive) extract(f *zip.File, dest string) error {
	e, err := a.open(f)
	if err != nil {
		return err
	}
	defer e.Close()
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, e); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
