// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package where

import (
	"errors"
	"net/http"

	"github.com/apex/log"

	"github.com/hollowco/wherepipe/internal/coerce"
	"github.com/hollowco/wherepipe/internal/literal"
)

// ErrInvalidQueryFormat is the only error Resolve returns. Details of the
// underlying syntax error are logged, not returned.
var ErrInvalidQueryFormat = errors.New("invalid query format")

// Filter maps each key of the literal to either a bare value or an operator
// object such as {"gte": 18}.
type Filter map[string]any

// Resolver turns filter literals into Filters.
type Resolver struct {
	coercer *coerce.Coercer
}

// NewResolver returns a Resolver whose date(...) coercion also accepts the
// given time layouts.
func NewResolver(dateLayouts ...string) *Resolver {
	return &Resolver{coercer: &coerce.Coercer{DateLayouts: dateLayouts}}
}

// Default is the Resolver used by the package level functions.
var Default = NewResolver()

// Resolve resolves input with Default.
func Resolve(input *string) (Filter, error) {
	return Default.Resolve(input)
}

// ResolveString resolves input with Default.
func ResolveString(input string) (Filter, error) {
	return Default.ResolveString(input)
}

// Resolve returns nil for a nil input, meaning no filter was given. Otherwise
// it behaves like ResolveString.
func (r *Resolver) Resolve(input *string) (Filter, error) {
	if input == nil {
		return nil, nil
	}
	return r.ResolveString(*input)
}

// ResolveString parses input and returns its Filter. A blank input gives an
// empty, non-nil Filter. Malformed input gives ErrInvalidQueryFormat and no
// partial result.
func (r *Resolver) ResolveString(input string) (Filter, error) {
	pairs, err := literal.Parse(input)
	if err != nil {
		log.WithError(err).Debugf("rejecting filter literal %q", input)
		return nil, ErrInvalidQueryFormat
	}

	filter := make(Filter, len(pairs))
	for _, pair := range pairs {
		r.apply(filter, pair)
	}

	return filter, nil
}

// Rule returns the operator rule for a raw value, if it has one.
func (r *Resolver) Rule(raw string) (Rule, bool) {
	return r.rule(raw, r.coercer.Coerce(raw))
}

// apply stores the resolved pair. An operator rule always replaces what is
// stored under the key; a bare value is only stored if the key is unset.
func (r *Resolver) apply(filter Filter, pair literal.Pair) {
	value := r.coercer.Coerce(pair.Value)

	if rule, ok := r.rule(pair.Value, value); ok {
		filter[pair.Key] = rule.Map()
		log.Debugf("%s: %s rule", pair.Key, rule.Operator)
		return
	}

	if value.IsString() && value.Str == "" {
		return
	}
	if _, exists := filter[pair.Key]; !exists {
		filter[pair.Key] = value.Interface()
	}
}

// rule matches raw against Operators. A raw value that is itself a typed
// literal never matches.
func (r *Resolver) rule(raw string, value coerce.Value) (Rule, bool) {
	if !value.IsString() {
		return Rule{}, false
	}

	op, rest, ok := matchOperator(raw)
	if !ok {
		return Rule{}, false
	}

	rule := Rule{Operator: op, Value: r.coercer.Coerce(rest)}
	if relation, ok := asRelation(rule.Value); ok {
		rule.Relation = &relation
	}

	return rule, true
}

// StatusCode maps a Resolve error to the HTTP status a boundary layer should
// answer with.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidQueryFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
