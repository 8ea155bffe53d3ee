package cmd

import (
	"errors"
	"fmt"

	"github.com/dendrascience/classver/classfile"
	"github.com/dendrascience/classver/internal/config"
	"github.com/dendrascience/classver/internal/logging"
	"github.com/dendrascience/classver/scan"
	"github.com/spf13/cobra"
)

// checkOptions holds the flags shared by the root and check commands.
type checkOptions struct {
	configPath string
	max        int
	verbose    int
	keepGoing  bool
	unpack     bool
	tempDir    string
}

func (o *checkOptions) bind(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.max, "max", "m", 0, "Maximum Java release supported by your use case; a higher release exits non-zero")
	cmd.Flags().CountVarP(&o.verbose, "verbose", "v", "Verbose logging, can be repeated")
	cmd.Flags().BoolVarP(&o.keepGoing, "keep-going", "k", false, "Report unreadable inputs and continue instead of stopping at the first")
	cmd.Flags().BoolVar(&o.unpack, "unpack", false, "Extract jars to a temporary directory instead of streaming entries")
	cmd.Flags().StringVar(&o.tempDir, "temp-dir", "", "Parent directory for --unpack scratch space")
	cmd.Flags().StringVarP(&o.configPath, "config", "c", "", "Config file (default "+config.DefaultFile+" if present)")
}

// resolve merges the config file with flags that were set explicitly.
func (o *checkOptions) resolve(cmd *cobra.Command) (config.Config, error) {
	file, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg := file.Resolve()

	flags := cmd.Flags()
	if flags.Changed("max") {
		if o.max < 0 {
			return config.Config{}, fmt.Errorf("--max must not be negative, got %d", o.max)
		}
		m := o.max
		cfg.Max = &m
	}
	if o.verbose > cfg.Verbosity {
		cfg.Verbosity = o.verbose
	}
	if flags.Changed("keep-going") {
		cfg.KeepGoing = o.keepGoing
	}
	if flags.Changed("unpack") {
		cfg.Unpack = o.unpack
	}
	if flags.Changed("temp-dir") {
		cfg.TempDir = o.tempDir
	}
	return cfg, nil
}

// NewCheckCmd creates and returns the check subcommand for the classver CLI.
// It reports the Java release each input needs.
func NewCheckCmd() *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check [flags] PATH...",
		Short: "Report the Java release required by class files and jars",
		Long: `Report the Java release required by each class file or jar.

For a jar, the highest version among its classes is reported. Inputs are
processed in the order given. With --max, the command fails after all inputs
are read if any of them needs a newer release, listing every offending release.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args)
		},
	}
	opts.bind(cmd)
	return cmd
}

func runCheck(cmd *cobra.Command, opts *checkOptions, paths []string) error {
	cfg, err := opts.resolve(cmd)
	if err != nil {
		return err
	}
	var ceiling *classfile.Release
	if cfg.Max != nil {
		r := classfile.Release(*cfg.Max)
		ceiling = &r
	}

	log := logging.New(cmd.ErrOrStderr(), cfg.Verbosity)
	if ceiling != nil {
		log.Debug("checking against maximum", "max", ceiling.String())
	}
	logging.Trace(log, "resolved configuration",
		"keep_going", cfg.KeepGoing, "unpack", cfg.Unpack, "paths", len(paths))

	out := cmd.OutOrStdout()
	s := scan.New(scan.Options{
		Logger:    log,
		Unpack:    cfg.Unpack,
		TempDir:   cfg.TempDir,
		KeepGoing: cfg.KeepGoing,
		OnVerdict: func(v scan.Verdict) {
			fmt.Fprintln(out, v)
		},
	})

	verdicts, runErr := s.Run(paths)
	if runErr != nil && !cfg.KeepGoing {
		return runErr
	}

	return errors.Join(runErr, scan.CheckCeiling(ceiling, verdicts))
}
