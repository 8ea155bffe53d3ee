// Package fixture writes synthetic class files and jars.
//
// The class files carry a valid header and a few filler bytes; they are not
// loadable by a JVM but are enough for anything that only reads the version.
package fixture

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
)

// Class returns the bytes of a minimal class file with the given major
// version.
func Class(major uint16) []byte {
	b := make([]byte, 16)
	copy(b, []byte{0xCA, 0xFE, 0xBA, 0xBE})
	binary.BigEndian.PutUint16(b[6:8], major)
	// constant_pool_count and some noise nobody should read
	binary.BigEndian.PutUint16(b[8:10], 1)
	copy(b[10:], []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01})
	return b
}

// WriteClass writes a minimal class file to path, creating parent
// directories as needed.
func WriteClass(path string, major uint16) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, Class(major), 0o644)
}

// Entry is one file inside a generated jar.
type Entry struct {
	Name string
	Data []byte
	// Store disables compression for the entry.
	Store bool
}

// ClassEntry is shorthand for an Entry holding a class file.
func ClassEntry(name string, major uint16) Entry {
	return Entry{Name: name, Data: Class(major)}
}

// Manifest is a jar manifest entry.
func Manifest() Entry {
	return Entry{
		Name: "META-INF/MANIFEST.MF",
		Data: []byte("Manifest-Version: 1.0\r\nCreated-By: classver\r\n\r\n"),
	}
}

// WriteJar writes a zip archive holding entries, in order, to w.
func WriteJar(w io.Writer, entries []Entry) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestSpeed)
	})
	for _, e := range entries {
		method := zip.Deflate
		if e.Store {
			method = zip.Store
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: e.Name, Method: method})
		if err != nil {
			return err
		}
		if _, err := fw.Write(e.Data); err != nil {
			return err
		}
	}
	return zw.Close()
}

// Jar returns the bytes of a zip archive holding entries.
func Jar(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJar(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJarFile writes a zip archive holding entries to path.
func WriteJarFile(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJar(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
