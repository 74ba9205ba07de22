// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/hollowco/wherepipe/internal/config"
	"github.com/hollowco/wherepipe/internal/differ"
	"github.com/hollowco/wherepipe/internal/meta"
)

// diffCommandAction is the action handler for the "diff" subcommand. It
// resolves two literals and prints their structural difference.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	config.Config.Namespace = "diff"

	args := cmd.Args().Slice()
	if len(args) != 2 {
		return fmt.Errorf("diff requires exactly two filter literals, got %d", len(args))
	}

	resolver := GetResolver(cmd)

	left, err := resolver.ResolveString(args[0])
	if err != nil {
		return fmt.Errorf("first filter: %w", err)
	}
	right, err := resolver.ResolveString(args[1])
	if err != nil {
		return fmt.Errorf("second filter: %w", err)
	}

	var ignore []string
	for key := range strings.SplitSeq(cmd.String("ignore"), ",") {
		if key = strings.TrimSpace(key); key != "" {
			ignore = append(ignore, key)
		}
	}

	modified, err := differ.Diff(writer(cmd), left, right, ignore, cmd.Bool("color"))
	if err != nil {
		return err
	}
	log.Debugf("filters differ: %t", modified)

	return nil
}

// diffCommandBuilder constructs the "diff" subcommand.
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "compare two filter literals",
		UsageText: "wherepipe diff <literal> <literal>",
		Metadata:  map[string]any{"meta": meta},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "enable colored diff output",
				Value:   false,
			},
			&cli.StringFlag{
				Name:  "ignore",
				Usage: "comma-separated list of top-level keys to leave out of the comparison",
			},
		},
		Action: diffCommandAction,
	}
}
