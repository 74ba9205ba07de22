// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/hollowco/wherepipe/internal/config"
	"github.com/hollowco/wherepipe/internal/meta"
	"github.com/hollowco/wherepipe/internal/where"
)

// aliases maps subcommand aliases to the name used as config namespace.
var aliases = map[string]string{
	"p": "parse",
}

// ResolveAlias returns the subcommand name an alias stands for, or name itself
// when it is not an alias.
func ResolveAlias(name string) string {
	if full, ok := aliases[name]; ok {
		return full
	}
	return name
}

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	// The arg[1] immediately following the binary (arg[0]) is the wherepipe
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = ResolveAlias(args[1])
	}

	// A missing config file is fine; every setting has a default.
	cfg, err := config.Load(ns)
	if err != nil {
		log.Debugf("config not loaded: err=%v", err)
		config.Config.Namespace = ns
	}

	meta := meta.Meta{
		Args:     args,
		Config:   cfg,
		Context:  ctx,
		Resolver: where.NewResolver(config.DateLayouts()...),
	}

	app := &cli.Command{
		Name:  "wherepipe",
		Usage: "resolve compact filter literals into query filters",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "wherepipe version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		parseCommandBuilder(meta),
		diffCommandBuilder(meta),
		opsCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
