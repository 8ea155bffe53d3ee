package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/dendrascience/classver/classfs"
	"github.com/dendrascience/classver/internal/logging"
	"github.com/dendrascience/classver/version"
	"github.com/spf13/cobra"
)

// NewMountCmd creates and returns the mount subcommand for the classver CLI.
// It exposes the class versions of an archive as a read-only filesystem.
func NewMountCmd() *cobra.Command {
	var verbose int

	cmd := &cobra.Command{
		Use:   "mount ARCHIVE MOUNTPOINT",
		Short: "Mount a read-only view of an archive's class versions",
		Long: `Mount a read-only filesystem mirroring the class entries of an archive.

ARCHIVE is the path to a jar (or any zip container) holding class files.
MOUNTPOINT is the directory where the filesystem will be mounted.

Every class entry appears at its archive path as a small file holding its
version, for example "61 (Java 17)". The file .classver at the root holds the
largest version in the archive and the number of classes scanned.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMount(cmd, args[0], args[1], verbose)
		},
	}

	cmd.Flags().CountVarP(&verbose, "verbose", "v", "Verbose logging, can be repeated")

	return cmd
}

func runMount(cmd *cobra.Command, archivePath, mountpoint string, verbose int) error {
	log := logging.New(cmd.ErrOrStderr(), verbose)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "classver %s starting...\n", version.GetFullVersion())

	if pathsOverlap(filepath.Dir(archivePath), mountpoint) {
		log.Warn("mountpoint overlaps the archive's directory",
			"archive", archivePath, "mountpoint", mountpoint)
	}

	filesystem, err := classfs.New(archivePath, log)
	if err != nil {
		return fmt.Errorf("%s: %w", archivePath, err)
	}

	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("classver"),
		fuse.Subtype("classver"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return err
	}
	defer c.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer signal.Stop(sigChan)
	done := make(chan struct{})
	stopped := watchInterrupt(sigChan, done, func() {
		fmt.Fprintln(out, "Received interrupt signal, shutting down...")
		if err := fuse.Unmount(mountpoint); err != nil {
			log.Error("unmount failed", "mountpoint", mountpoint, "error", err)
		}
	})

	fmt.Fprintf(out, "classver mounted %s at %s: %s [%d classes]\n",
		archivePath, mountpoint, filesystem.Max, filesystem.Classes)
	err = fs.Serve(c, filesystem)
	close(done)
	<-stopped
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Shutdown complete")
	return nil
}

// watchInterrupt calls unmount on the first signal from sigs. It gives up
// once done is closed, for example after an external unmount. The returned
// channel is closed when the watcher has exited.
func watchInterrupt(sigs <-chan os.Signal, done <-chan struct{}, unmount func()) <-chan struct{} {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-sigs:
			unmount()
		case <-done:
		}
	}()
	return stopped
}

// pathsOverlap reports whether one path is the same as, or nested inside,
// the other.
func pathsOverlap(path1, path2 string) bool {
	abs1, err := filepath.Abs(path1)
	if err != nil {
		return false
	}
	abs2, err := filepath.Abs(path2)
	if err != nil {
		return false
	}
	return within(abs1, abs2) || within(abs2, abs1)
}

func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
