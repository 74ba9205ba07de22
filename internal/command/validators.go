// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks the flags whose valid values depend on the
// command, such as the columns --sort may name.
func GlobalFlagsValidator(c *cli.Command, columns []string) error {
	if err := FlagValidators(c.String("sort"), SortValidator(columns)); err != nil {
		return fmt.Errorf("invalid value for --sort: %w", err)
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}
	valid := false
	for _, v := range validOutputFlagValues {
		if v == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

// SortValidator accepts a comma-separated list of columns, each optionally
// prefixed with "-" and "!". An empty spec is valid.
func SortValidator(columns []string) FlagValidatorType {
	return func(value any) error {
		spec, _ := value.(string)
		if spec == "" {
			return nil
		}
		for field := range strings.SplitSeq(spec, ",") {
			field = strings.TrimPrefix(strings.TrimSpace(field), "-")
			field = strings.TrimPrefix(field, "!")
			if !slices.Contains(columns, field) {
				return fmt.Errorf("unknown column %q, must be one of %v", field, columns)
			}
		}
		return nil
	}
}
