// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package literal tokenizes filter literals of the form
//
//	id: int(1), firstName: banana, tags: in array(a,b)
//
// into ordered key/value pairs. Values are kept verbatim; typing them is the
// job of the coerce package.
//
// Delimiters:
//
//   - , : separates pairs, except inside a group or a quoted span
//   - : : separates a key from its value; only the first one in a pair counts
//   - () [] {} : groups, which must be balanced and correctly nested
//   - "..." '...' : quoted spans, opened at the start of a token or after
//     whitespace
//
// Malformed input is reported as a *ParseError and never produces a partial
// result.
package literal
