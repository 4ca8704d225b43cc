package sales

import (
	"strings"
)

// Cond is one node of a compiled filter condition tree. Conditions are
// store-agnostic; rendering to SQL happens in one place so the combination
// rules stay testable without a database.
type Cond interface {
	appendSQL(sb *strings.Builder, args *[]any)
}

// Predicate is the canonical conjunction of conditions describing which
// records qualify for a request. The zero value matches every record.
type Predicate struct {
	conds []Cond
}

// And returns a predicate extended with the given condition.
func (p Predicate) And(c Cond) Predicate {
	return Predicate{conds: append(p.conds, c)}
}

// IsEmpty reports whether the predicate constrains anything at all.
func (p Predicate) IsEmpty() bool {
	return len(p.conds) == 0
}

// SQL renders the predicate as a WHERE fragment plus bind args. An empty
// predicate renders to an empty clause.
func (p Predicate) SQL() (string, []any) {
	if len(p.conds) == 0 {
		return "", nil
	}
	var sb strings.Builder
	args := make([]any, 0, len(p.conds))
	for i, c := range p.conds {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		c.appendSQL(&sb, &args)
	}
	return sb.String(), args
}

// inSet matches records whose column value is one of the given values.
type inSet struct {
	column string
	values []string
}

func (c inSet) appendSQL(sb *strings.Builder, args *[]any) {
	sb.WriteString(c.column)
	sb.WriteString(" IN (")
	for i, v := range c.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("?")
		*args = append(*args, v)
	}
	sb.WriteString(")")
}

// rangeCond matches records whose column value lies in the inclusive
// interval [min, max]. A nil bound leaves that side open. Date columns hold
// fixed-width ISO-8601 strings, so ordinary comparison operators order them
// chronologically.
type rangeCond struct {
	column string
	min    any
	max    any
}

func (c rangeCond) appendSQL(sb *strings.Builder, args *[]any) {
	switch {
	case c.min != nil && c.max != nil:
		sb.WriteString("(")
		sb.WriteString(c.column)
		sb.WriteString(" >= ? AND ")
		sb.WriteString(c.column)
		sb.WriteString(" <= ?)")
		*args = append(*args, c.min, c.max)
	case c.min != nil:
		sb.WriteString(c.column)
		sb.WriteString(" >= ?")
		*args = append(*args, c.min)
	case c.max != nil:
		sb.WriteString(c.column)
		sb.WriteString(" <= ?")
		*args = append(*args, c.max)
	default:
		sb.WriteString("1 = 1")
	}
}

// contains matches records whose column contains needle as a
// case-insensitive substring. NULL columns never match. The needle is
// treated literally, so LIKE metacharacters in user input do not act as
// wildcards.
type contains struct {
	column string
	needle string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (c contains) appendSQL(sb *strings.Builder, args *[]any) {
	sb.WriteString("LOWER(")
	sb.WriteString(c.column)
	sb.WriteString(") LIKE ? ESCAPE '\\'")
	*args = append(*args, "%"+likeEscaper.Replace(strings.ToLower(c.needle))+"%")
}

// anyOf is the disjunction of its children.
type anyOf []Cond

func (c anyOf) appendSQL(sb *strings.Builder, args *[]any) {
	if len(c) == 1 {
		c[0].appendSQL(sb, args)
		return
	}
	sb.WriteString("(")
	for i, child := range c {
		if i > 0 {
			sb.WriteString(" OR ")
		}
		child.appendSQL(sb, args)
	}
	sb.WriteString(")")
}
