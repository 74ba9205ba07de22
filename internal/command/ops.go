// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/hollowco/wherepipe/internal/coerce"
	"github.com/hollowco/wherepipe/internal/config"
	"github.com/hollowco/wherepipe/internal/meta"
	"github.com/hollowco/wherepipe/internal/output"
	"github.com/hollowco/wherepipe/internal/where"
)

// opsColumns are the text table columns of the ops listing.
var opsColumns = []string{"name", "type", "produces", "options"}

// opsRows lists every operator keyword, in match order, followed by every type
// tag.
func opsRows() []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(where.Operators)+len(coerce.Tags))

	for _, op := range where.Operators {
		var options []string
		for k, v := range op.Options() {
			options = append(options, k+"="+output.InterfaceToString(v))
		}
		sort.Strings(options)

		rows = append(rows, map[string]interface{}{
			"name":    string(op),
			"type":    "operator",
			"options": strings.Join(options, ","),
		})
	}

	for _, tag := range coerce.Tags {
		rows = append(rows, map[string]interface{}{
			"name":     tag.Name,
			"type":     "tag",
			"produces": tag.Kind.String(),
		})
	}

	return rows
}

// opsCommandAction is the action handler for the "ops" subcommand.
func opsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	config.Config.Namespace = "ops"

	rows := opsRows()
	return output.SpitDocument(rows, rows, opsColumns, cmd, writer(cmd))
}

// opsCommandBuilder constructs the "ops" subcommand.
func opsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "ops",
		Usage:     "list operator keywords and type tags",
		UsageText: "wherepipe ops",
		Columns:   opsColumns,
		Action:    opsCommandAction,
		Meta:      meta,
	}).Build()
}
