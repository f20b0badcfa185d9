// doortool is a CLI for building, inspecting and exporting parametric doors.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		printUsage(stderr)
		return errUsage
	}

	command, rest := args[0], args[1:]
	switch command {
	case "types", "ls":
		return cmdTypes(rest, stdout, stderr)
	case "build":
		return cmdBuild(rest, stdout, stderr)
	case "metadata", "meta":
		return cmdMetadata(rest, stdout, stderr)
	case "schema":
		return cmdSchema(rest, stdout, stderr)
	case "export", "x":
		return cmdExport(rest, stdout, stderr)
	case "watch":
		return cmdWatch(rest, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return errUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `doortool - parametric door utility

Usage:
  doortool <command> [options]

Commands:
  types                              List registered door types
  build    [-type N] [-set k=v ...]  Build a door and print a summary
  metadata [-format yaml|toml]       Print the door's metadata
  schema   [-format yaml|toml]       Print the property editor schema
  export   [-out DIR] [-name BASE]   Write OBJ/MTL (and optionally a preset)
  watch    -preset FILE [-export]    Rebuild whenever the preset changes

Door options (build, metadata, export, watch):
  -type N          door type code
  -preset FILE     YAML or TOML preset; overrides -type
  -set key=value   override a property, repeatable
  -smooth          smooth vertex normals
  -config FILE     config file
  -debug           debug logging

Examples:
  doortool types
  doortool build -type 4 -set openDirection=BOTH_SIDES -set doorRatio=0.3
  doortool export -preset presets/office.yaml -out ./export
  doortool watch -preset presets/office.yaml -export`)
}
