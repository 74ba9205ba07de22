// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hollowco/wherepipe/internal/meta"
	"github.com/hollowco/wherepipe/internal/where"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// GetResolver returns the Resolver from the command's meta, or where.Default.
func GetResolver(cmd *cli.Command) *where.Resolver {
	if r := GetMeta(cmd).Resolver; r != nil {
		return r
	}
	return where.Default
}

// ReadLiteral returns the filter literal given to cmd. Positional arguments
// are joined with single spaces so an unquoted literal still reads as one. A
// lone "-", or no arguments with piped stdin, reads the literal from stdin.
// It returns nil when there is no literal at all.
func ReadLiteral(cmd *cli.Command) (*string, error) {
	args := cmd.Args().Slice()
	if len(args) > 0 && args[0] != "-" {
		literal := strings.Join(args, " ")
		return &literal, nil
	}

	reader := cmd.Root().Reader
	if reader == nil {
		reader = os.Stdin
	}

	if len(args) == 0 && isTerminal(reader) {
		log.Debugf("no literal and stdin is a terminal")
		return nil, nil
	}

	b, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}

	literal := strings.TrimRight(string(b), "\r\n")
	return &literal, nil
}

// isTerminal reports whether r is a terminal rather than a pipe or file.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writer returns the root command's writer, defaulting to os.Stdout.
func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
