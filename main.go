// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/henoctshimanga/tfinv/internal/command"
	"github.com/henoctshimanga/tfinv/internal/config"
	mylog "github.com/henoctshimanga/tfinv/internal/log"
	"github.com/henoctshimanga/tfinv/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) >= 2 {
		args = mangleArguments(args)
	}
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	}

	// Short-circuit --version/-v before any subcommand.
	if args[1] == "--version" || args[1] == "-v" {
		fmt.Println(version.Version)
		return 0
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments expands an argument set from the config file into the
// command line. `tfinv gen prod @ci` appends the entries of `gen.ci`; with
// no explicit @set, `gen.defaults` applies.
func mangleArguments(args []string) []string {
	// Short-circuit for --help/-h and leave the line untouched.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return args
		}
	}

	set := "defaults"
	workingArgs := make([]string, 0, len(args))
	for _, a := range args {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			continue
		}
		workingArgs = append(workingArgs, a)
	}

	// A line of nothing but @set tokens has no command to expand against.
	if len(workingArgs) < 2 {
		return workingArgs
	}

	// Set entries may hold several tokens ("--format yaml"). Flags are
	// order-insensitive, so appending keeps the positionals intact.
	setArgs, _ := config.GetStrings(workingArgs[1] + "." + set)
	for _, arg := range setArgs {
		workingArgs = append(workingArgs, strings.Fields(arg)...)
	}

	log.Debugf("set=%s, args=%v", set, workingArgs)
	return workingArgs
}
