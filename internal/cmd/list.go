package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dendrascience/classver/archive"
	"github.com/dendrascience/classver/classfile"
	"github.com/dendrascience/classver/internal/logging"
	"github.com/dendrascience/classver/scan"
	"github.com/spf13/cobra"
)

// NewListCmd creates and returns the list subcommand for the classver CLI.
// It prints the version of every class entry inside archives.
func NewListCmd() *cobra.Command {
	var (
		all     bool
		verbose int
	)

	cmd := &cobra.Command{
		Use:   "list PATH...",
		Short: "List every class in an archive with its version",
		Long: `List every class entry of each archive together with its version.

The type of each input is detected from its first bytes, not its name. Class
files are listed as a single line. Entries under META-INF/ and files that are
not classes are only shown with --all, marked as skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.New(cmd.ErrOrStderr(), verbose)
			for _, path := range args {
				if err := runList(cmd.OutOrStdout(), path, all, log); err != nil {
					return &scan.PathError{Path: path, Err: err}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Also show entries that are not scanned")
	cmd.Flags().CountVarP(&verbose, "verbose", "v", "Verbose logging, can be repeated")

	return cmd
}

func runList(out io.Writer, path string, all bool, log *slog.Logger) error {
	kind, err := classfile.SniffFile(path)
	if err != nil {
		return err
	}
	log.Debug("sniffed input", "path", path, "kind", kind.String())
	fmt.Fprintf(out, "%s (%s)\n", path, kind)

	switch kind {
	case classfile.ClassFile:
		v, err := classfile.ParseFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s\n", v.Version())
		return nil
	case classfile.ZipContainer:
	default:
		return &scan.UnrecognizedInputError{
			ClassErr:   classfile.ErrNotAClassFile,
			ArchiveErr: archive.ErrNotAnArchive,
		}
	}

	a, err := archive.OpenFile(path)
	if err != nil {
		return err
	}
	defer a.Close()

	cvs, err := a.ClassVersions()
	if err != nil {
		return err
	}
	next := 0
	if all {
		for _, name := range a.Entries() {
			if next < len(cvs) && cvs[next].Name == name {
				fmt.Fprintf(out, "  %s: %s\n", name, cvs[next].Version.Version())
				next++
				continue
			}
			fmt.Fprintf(out, "  %s: skipped\n", name)
		}
	} else {
		for _, cv := range cvs {
			fmt.Fprintf(out, "  %s: %s\n", cv.Name, cv.Version.Version())
		}
	}

	raws := make([]classfile.RawVersion, len(cvs))
	for i, cv := range cvs {
		raws[i] = cv.Version
	}
	top, _ := classfile.MaxVersion(raws)
	fmt.Fprintf(out, "  largest: %s [%d classes]\n", top, len(raws))
	return nil
}
