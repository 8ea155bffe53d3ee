// Package cmd provides the command-line interface implementation for classver.
//
// This package contains all the subcommand implementations for the classver CLI tool.
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root/check: Report the Java release each input needs, optionally failing above a maximum
//   - list: Show every class entry of an archive with its version
//   - mount: Mount a read-only FUSE view of an archive's class versions
//   - seed: Generate synthetic class files and jars for testing
//   - version: Print build information
//
// Each command is implemented as a separate file with its own constructor function
// that returns a *cobra.Command. The root command runs check when given paths
// directly, so `classver lib.jar` and `classver check lib.jar` are equivalent.
package cmd
