// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hollowco/wherepipe/internal/command"
	"github.com/hollowco/wherepipe/internal/config"
	"github.com/hollowco/wherepipe/internal/log"
	"github.com/hollowco/wherepipe/internal/version"
)

var ctx = context.Background()

// valueFlags are the flags that consume the following argument as their value.
var valueFlags = map[string]bool{
	"--output": true, "-o": true,
	"--path": true, "-p": true,
	"--sort": true, "-s": true,
	"--ignore": true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// deduplicateFlags drops all but the last occurrence of each flag after the
// subcommand, so a flag from an expanded @set can be overridden on the command
// line. Flag values travel with their flag and positional arguments are kept
// in order.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type group struct {
		name   string
		tokens []string
	}

	var groups []group
	for i := 2; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			for _, rest := range args[i:] {
				groups = append(groups, group{tokens: []string{rest}})
			}
			break
		}
		if a == "-" || !strings.HasPrefix(a, "-") {
			groups = append(groups, group{tokens: []string{a}})
			continue
		}

		name, _, hasValue := strings.Cut(a, "=")
		g := group{name: name, tokens: []string{a}}
		if !hasValue && valueFlags[name] && i+1 < len(args) {
			i++
			g.tokens = append(g.tokens, args[i])
		}
		groups = append(groups, g)
	}

	last := make(map[string]int)
	for i, g := range groups {
		if g.name != "" {
			last[g.name] = i
		}
	}

	result := append([]string{}, args[:2]...)
	for i, g := range groups {
		if g.name != "" && last[g.name] != i {
			continue
		}
		result = append(result, g.tokens...)
	}

	return result
}

// processSetOnly handles the @set logic for all commands, expanding set
// arguments at the @set position. A set is a list of argument strings stored
// under "<command>.<set>" in the config file.
func processSetOnly(args []string) []string {
	if len(args) < 3 {
		return args
	}

	// Look for an explicit @set argument starting from index 2.
	idx := 2
	set := ""
	removeIdx := -1
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			removeIdx = idx + i
			break
		}
	}
	if removeIdx == -1 {
		return args
	}

	// Remove the @set argument.
	args = append(args[:removeIdx:removeIdx], args[removeIdx+1:]...)

	// Expand the set arguments at the removeIdx position.
	setArgs, err := config.GetStringSlice(command.ResolveAlias(args[1]) + "." + set)
	if err != nil {
		log.Debugf("set %q not expanded: err=%v", set, err)
		return args
	}
	for _, arg := range setArgs {
		parts := strings.Fields(arg)
		args = append(args[:removeIdx:removeIdx], append(parts, args[removeIdx:]...)...)
		removeIdx += len(parts)
	}

	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()
	return run(os.Args)
}

// run is realMain without the process-wide setup.
func run(args []string) int {
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = deduplicateFlags(processSetOnly(args))
		log.Debugf("args after set processing: args=%v", args)
	}

	return initAndRunApp(args)
}
