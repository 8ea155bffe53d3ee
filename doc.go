// Package main provides the classver command-line interface.
//
// classver reports the minimum Java release needed to run compiled class
// files, given on their own or packed in jar archives, and can fail when any
// input needs a release newer than a configured maximum.
//
// The main binary supports multiple subcommands:
//   - check: Report the version of each input (the default)
//   - list: Show the version of every class inside an archive
//   - mount: Mount a read-only view of an archive's class versions
//   - seed: Generate test jars and class files
//   - version: Show version information
package main
