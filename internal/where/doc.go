// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package where resolves filter literals into the nested filter mappings
// understood by a Prisma style query layer.
//
// Each pair of the literal (see package literal) is resolved on its own:
//
//   - "id: int(1)" : the value is coerced, giving {"id": 1}
//   - "age: gte int(18)" : an operator prefix gives {"age": {"gte": 18}}
//   - "name: contains ban" : text operators add a mode, giving
//     {"name": {"contains": "ban", "mode": "insensitive"}}
//   - "author: some name: alice" : an operator argument of the form
//     "field: value" is a relation, giving {"author": {"some": {"name": "alice"}}}
//
// Operators:
//
// lt, lte, gt, gte, equals, not, contains, startsWith, endsWith, every, some,
// none and in. They are tried in that order and the first one followed by a
// space at the start of the value wins. Values that are typed literals as a
// whole, such as string(lt 5), are never operator expressions.
//
// Errors:
//
// Malformed literals (unbalanced groups, a pair without ':') are rejected
// with ErrInvalidQueryFormat. Values whose type tag cannot be honoured, such
// as int(abc), are kept as plain text instead.
package where
