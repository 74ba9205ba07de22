// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/hollowco/wherepipe/internal/config"
	"github.com/hollowco/wherepipe/internal/where"
)

// Meta contains runtime metadata shared by commands: the CLI arguments, the
// loaded configuration, the context and the Resolver configured from it.
type Meta struct {
	Args     []string
	Config   config.Type
	Context  context.Context
	Resolver *where.Resolver
}
