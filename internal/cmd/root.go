package cmd

import (
	"github.com/dendrascience/classver/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the classver CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	opts := &checkOptions{}
	rootCmd := &cobra.Command{
		Use:   "classver [flags] PATH...",
		Short: "classver - find the minimum Java release needed to run class files and jars",
		Long: `classver reads the version field of compiled Java class files, either on
their own or inside jar archives, and reports the Java release each input needs.

Files ending in .jar are read as archives, files ending in .class as class
files, and anything else is detected from its contents. Classes under
META-INF/ are ignored.

With --max, classver exits non-zero when any input needs a newer release.

Use subcommands to perform different operations:
  - check: The default; report versions of files given as arguments
  - list: Show the version of every class inside an archive
  - mount: Mount a read-only view of an archive's class versions
  - seed: Generate test class files and jars`,
		Version:       version.GetFullVersion(),
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args)
		},
	}
	opts.bind(rootCmd)

	groupInspect := "inspect"
	groupUtilities := "utilities"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupInspect,
		Title: "Inspection Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	checkCmd := NewCheckCmd()
	listCmd := NewListCmd()
	mountCmd := NewMountCmd()
	seedCmd := NewSeedCmd()
	versionCmd := NewVersionCmd()

	checkCmd.GroupID = groupInspect
	listCmd.GroupID = groupInspect
	mountCmd.GroupID = groupInspect
	seedCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	// Add subcommands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
