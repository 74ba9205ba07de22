// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/hollowco/wherepipe/internal/config"
	"github.com/hollowco/wherepipe/internal/meta"
	"github.com/hollowco/wherepipe/internal/output"
)

// parseCommandAction is the action handler for the "parse" subcommand. It
// resolves the literal from the arguments or stdin and emits the filter per
// the common flags.
func parseCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	config.Config.Namespace = "parse"

	if cmd.Bool("lines") {
		reader := cmd.Root().Reader
		if reader == nil {
			reader = os.Stdin
		}
		return parseLines(ctx, cmd, reader)
	}

	literal, err := ReadLiteral(cmd)
	if err != nil {
		return err
	}

	filter, err := GetResolver(cmd).Resolve(literal)
	if err != nil {
		return err
	}
	if filter == nil {
		log.Debugf("no filter given")
		return nil
	}

	return output.Spit(filter, cmd, writer(cmd))
}

// parseLines resolves every non-blank line of input as its own literal and
// emits each filter in turn. Resolution stops at the first invalid line.
func parseLines(ctx context.Context, cmd *cli.Command, input io.Reader) error {
	resolver := GetResolver(cmd)

	scanner := bufio.NewScanner(input)
	for n := 1; scanner.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		filter, err := resolver.ResolveString(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if err := output.Spit(filter, cmd, writer(cmd)); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	return nil
}

// parseCommandBuilder constructs the "parse" subcommand.
func parseCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "parse",
		Aliases:   []string{"p"},
		Usage:     "resolve a filter literal",
		UsageText: "wherepipe parse [literal|-]",
		Columns:   output.Columns,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "lines",
				Aliases: []string{"l"},
				Usage:   "resolve each stdin line as its own literal",
				Value:   false,
			},
		},
		Action: parseCommandAction,
		Meta:   meta,
	}).Build()
}
