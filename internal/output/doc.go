// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders resolved filters as a text table, JSON, raw JSON or
// YAML, with optional gjson path selection and row sorting.
package output
