// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package query assembles parameterised PostgreSQL WHERE clauses.

Fragments are written with '?' placeholders and renumbered to $1, $2, ... as
they are appended, so independent scopes can be composed without tracking
argument positions by hand.

Usage:

	builder := query.New()
	builder.Where("category = ?", "martyr")
	builder.Where("popularity_score >= ?", 5)
	sql := "SELECT ... FROM core.saint" + builder.WhereSQL()
	rows, err := pool.Query(ctx, sql, builder.Args()...)
*/
package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Builder accumulates AND-ed conditions and their positional arguments.
type Builder struct {
	conditions []string
	args       []any
}

// New returns an empty [Builder].
func New() *Builder {
	return &Builder{}
}

// Where appends a condition. Every '?' in fragment consumes one argument.
//
// It panics when the number of placeholders and arguments disagree, since
// that is always a programming error in the calling scope.
func (builder *Builder) Where(fragment string, args ...any) *Builder {
	if count := strings.Count(fragment, "?"); count != len(args) {
		panic(fmt.Sprintf("query: %q has %d placeholders but %d args", fragment, count, len(args)))
	}

	var rendered strings.Builder
	next := 0
	for _, r := range fragment {
		if r != '?' {
			rendered.WriteRune(r)
			continue
		}
		rendered.WriteString(builder.Arg(args[next]))
		next++
	}

	builder.conditions = append(builder.conditions, "("+rendered.String()+")")
	return builder
}

// Arg registers a value and returns its placeholder, e.g. "$3".
func (builder *Builder) Arg(value any) string {
	builder.args = append(builder.args, value)
	return "$" + strconv.Itoa(len(builder.args))
}

// WhereSQL renders " WHERE a AND b", or "" when no condition was added.
func (builder *Builder) WhereSQL() string {
	if len(builder.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(builder.conditions, " AND ")
}

// Args returns the positional arguments in placeholder order.
func (builder *Builder) Args() []any {
	return builder.args
}

// Len reports how many conditions have been added.
func (builder *Builder) Len() int {
	return len(builder.conditions)
}

// # LIKE Patterns

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes the LIKE metacharacters so term matches literally.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// Contains builds a substring pattern for ILIKE with the default '\' escape.
func Contains(term string) string {
	return "%" + EscapeLike(term) + "%"
}
