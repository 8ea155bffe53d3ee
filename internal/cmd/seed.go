package cmd

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/dendrascience/classver/classfile"
	"github.com/dendrascience/classver/internal/fixture"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/taigrr/colorhash"
)

// packageBuckets is the number of distinct packages seeded classes are
// spread over.
const packageBuckets = 16

type seedOptions struct {
	outputPath string
	jars       int
	classes    int
	loose      int
	minMajor   int
	maxMajor   int
	verbose    bool
}

// NewSeedCmd creates and returns the seed subcommand for the classver CLI.
// It generates jars and class files with randomized versions for testing.
func NewSeedCmd() *cobra.Command {
	opts := seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate test jars and class files with randomized versions",
		Long: `Generate jars and loose class files for testing classver.

Each class carries a random class file major version between --min-major and
--max-major. These are raw versions, not Java releases: 61 is Java 17. Jars also
contain a manifest and a multi-release copy of one class under
META-INF/versions/, which classver must ignore. For every output the expected
result is printed, so the output can be compared against a classver run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&opts.jars, "jars", "j", 10, "Number of jars to generate")
	cmd.Flags().IntVarP(&opts.classes, "count", "c", 100, "Number of classes per jar")
	cmd.Flags().IntVar(&opts.loose, "loose", 0, "Number of loose class files to generate")
	cmd.Flags().IntVar(&opts.minMajor, "min-major", 50, "Lowest class file major version to generate (50 is Java 6)")
	cmd.Flags().IntVar(&opts.maxMajor, "max-major", 65, "Highest class file major version to generate (65 is Java 21)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func (o seedOptions) validate() error {
	switch {
	case o.minMajor < classfile.ReleaseOffset+1:
		return fmt.Errorf("--min-major must be at least %d", classfile.ReleaseOffset+1)
	case o.maxMajor > 0xFFFF:
		return errors.New("--max-major does not fit a class file version")
	case o.minMajor > o.maxMajor:
		return fmt.Errorf("--min-major %d is above --max-major %d", o.minMajor, o.maxMajor)
	case o.jars < 0 || o.classes < 0 || o.loose < 0:
		return errors.New("counts must not be negative")
	case o.jars > 0 && o.classes == 0:
		return errors.New("jars need at least one class")
	}
	return nil
}

func runSeed(out io.Writer, opts seedOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if opts.verbose {
		fmt.Fprintf(out, "Generating %d jars and %d class files in %s\n", opts.jars, opts.loose, opts.outputPath)
	}

	if err := os.MkdirAll(opts.outputPath, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for i := 0; i < opts.jars; i++ {
		entries := []fixture.Entry{fixture.Manifest()}
		var top uint16
		for j := 0; j < opts.classes; j++ {
			major, err := randomMajor(opts.minMajor, opts.maxMajor)
			if err != nil {
				return err
			}
			top = max(top, major)
			entries = append(entries, fixture.ClassEntry(className(), major))
		}
		// Multi-release copies are newer than anything else in the jar and
		// must not change its verdict.
		mr := "META-INF/versions/99/" + entries[1].Name
		entries = append(entries, fixture.ClassEntry(mr, uint16(opts.maxMajor)+1))

		path := filepath.Join(opts.outputPath, fmt.Sprintf("seed-%03d.jar", i))
		if err := fixture.WriteJarFile(path, entries); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(out, "%s: %s [%d classes]\n", path, classfile.RawVersion(top).Version(), opts.classes)
	}

	for i := 0; i < opts.loose; i++ {
		major, err := randomMajor(opts.minMajor, opts.maxMajor)
		if err != nil {
			return err
		}
		path := filepath.Join(opts.outputPath, fmt.Sprintf("Seed%03d.class", i))
		if err := fixture.WriteClass(path, major); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(out, "%s: %s\n", path, classfile.RawVersion(major).Version())
	}

	if opts.verbose {
		fmt.Fprintf(out, "Successfully created %d files\n", opts.jars+opts.loose)
	}
	return nil
}

func randomMajor(lo, hi int) (uint16, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(hi-lo+1)))
	if err != nil {
		return 0, err
	}
	return uint16(lo + int(n.Int64())), nil
}

// className returns a unique entry name, bucketed into one of
// packageBuckets packages by a hash of the class name.
func className() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	name := "C" + id[:16]
	bucket := colorhash.HashString(name) % packageBuckets
	if bucket < 0 {
		bucket = -bucket
	}
	return fmt.Sprintf("com/example/seed/p%02d/%s.class", bucket, name)
}
