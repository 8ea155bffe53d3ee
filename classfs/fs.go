package classfs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/dendrascience/classver/archive"
	"github.com/dendrascience/classver/classfile"
	"github.com/dendrascience/classver/internal/logging"
)

// SummaryFile is the name of the top-level file holding the archive's
// largest version.
const SummaryFile = ".classver"

// FS is the filesystem for one archive.
type FS struct {
	Source  string
	Max     classfile.Version
	Classes int

	root    *Dir
	inodes  inodes
	mounted time.Time
	log     *slog.Logger
}

var _ fs.FS = (*FS)(nil)

// New reads every class entry of the archive at path and builds the tree.
func New(path string, log *slog.Logger) (*FS, error) {
	log = logging.OrDiscard(log)
	a, err := archive.OpenFile(path, archive.WithLogger(log))
	if err != nil {
		return nil, err
	}
	defer a.Close()

	cvs, err := a.ClassVersions()
	if err != nil {
		return nil, err
	}

	f := &FS{
		Source:  path,
		mounted: time.Now(),
		log:     log,
	}
	f.root = f.newDir()
	raws := make([]classfile.RawVersion, len(cvs))
	for i, cv := range cvs {
		raws[i] = cv.Version
		if err := f.add(cv.Name, cv.Version.Version()); err != nil {
			log.Warn("entry not shown", "entry", cv.Name, "reason", err)
		}
	}
	f.Max, _ = classfile.MaxVersion(raws)
	f.Classes = len(raws)

	summary := fmt.Sprintf("%s [%d classes]\n", f.Max, f.Classes)
	if err := f.root.link(SummaryFile, f.newFile([]byte(summary))); err != nil {
		return nil, err
	}
	log.Debug("built class version tree", "archive", path, "classes", f.Classes, "max", f.Max.String())
	return f, nil
}

// Root returns the root directory node.
func (f *FS) Root() (fs.Node, error) {
	return f.root, nil
}

func (f *FS) newDir() *Dir {
	return &Dir{
		fs:       f,
		inode:    f.inodes.next(),
		children: make(map[string]fs.Node),
	}
}

func (f *FS) newFile(data []byte) *File {
	return &File{fs: f, inode: f.inodes.next(), data: data}
}

// add places a file for entry name, creating intermediate directories.
func (f *FS) add(name string, v classfile.Version) error {
	var parts []string
	for _, p := range strings.Split(path.Clean(name), "/") {
		if p != "" && p != "." {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return fmt.Errorf("empty path")
	}
	d := f.root
	for _, p := range parts[:len(parts)-1] {
		switch n := d.children[p].(type) {
		case nil:
			sub := f.newDir()
			if err := d.link(p, sub); err != nil {
				return err
			}
			d = sub
		case *Dir:
			d = n
		default:
			return fmt.Errorf("%q is a file", p)
		}
	}
	return d.link(parts[len(parts)-1], f.newFile([]byte(v.String()+"\n")))
}

// Dir is a directory node. Its contents never change after New.
type Dir struct {
	fs       *FS
	inode    uint64
	names    []string
	children map[string]fs.Node
}

var (
	_ fs.Node               = (*Dir)(nil)
	_ fs.NodeStringLookuper = (*Dir)(nil)
	_ fs.HandleReadDirAller = (*Dir)(nil)
)

func (d *Dir) link(name string, n fs.Node) error {
	if _, ok := d.children[name]; ok {
		return fmt.Errorf("%q already exists", name)
	}
	d.children[name] = n
	d.names = append(d.names, name)
	return nil
}

// Attr returns directory attributes
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = d.inode
	a.Mode = os.ModeDir | 0o555
	a.Mtime = d.fs.mounted
	a.Ctime = d.fs.mounted
	a.Atime = d.fs.mounted
	return nil
}

// Lookup resolves names to nodes
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	if n, ok := d.children[name]; ok {
		return n, nil
	}
	return nil, syscall.ENOENT
}

// ReadDirAll lists the directory in archive order.
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	dirents := make([]fuse.Dirent, 0, len(d.names))
	for _, name := range d.names {
		switch n := d.children[name].(type) {
		case *Dir:
			dirents = append(dirents, fuse.Dirent{Inode: n.inode, Name: name, Type: fuse.DT_Dir})
		case *File:
			dirents = append(dirents, fuse.Dirent{Inode: n.inode, Name: name, Type: fuse.DT_File})
		}
	}
	return dirents, nil
}

// File holds the version line for one class entry.
type File struct {
	fs    *FS
	inode uint64
	data  []byte
}

var (
	_ fs.Node            = (*File)(nil)
	_ fs.HandleReadAller = (*File)(nil)
)

// Attr returns file attributes
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = f.inode
	a.Mode = 0o444
	a.Size = uint64(len(f.data))
	a.Mtime = f.fs.mounted
	a.Ctime = f.fs.mounted
	a.Atime = f.fs.mounted
	return nil
}

// ReadAll returns the version line.
func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	return f.data, nil
}
