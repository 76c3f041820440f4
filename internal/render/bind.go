package render

import (
	"strconv"
	"strings"

	"github.com/zoobzio/condql/internal/types"
)

// BindGroup returns a parenthesized group of n placeholders: (?, ?, ?).
func BindGroup(n int) string {
	if n <= 0 {
		return "()"
	}
	return "(" + strings.Repeat("?, ", n-1) + "?)"
}

// PrepareBindKeys returns the placeholder text for a value: "?" for a
// scalar, "(?, ?)" for a row and "((?, ?), (?, ?))" for a list of rows.
func (b *Base) PrepareBindKeys(v types.Value) string {
	switch v.Kind() {
	case types.RowValue:
		return BindGroup(len(v.Row()))
	case types.RowsValue:
		groups := make([]string, len(v.Rows()))
		for i, row := range v.Rows() {
			groups[i] = BindGroup(len(row))
		}
		return "(" + strings.Join(groups, ", ") + ")"
	default:
		return "?"
	}
}

// Rebind rewrites ? placeholders into the dialect's native style.
func (b *Base) Rebind(sql string) string {
	return Rebind(sql, b.caps.Placeholder)
}

// Rebind rewrites ? placeholders outside quoted text into style.
func Rebind(sql string, style PlaceholderStyle) string {
	if style == PlaceholderQuestion {
		return sql
	}
	positions := placeholders(sql, style == PlaceholderAtP)
	if len(positions) == 0 {
		return sql
	}

	prefix := "$"
	if style == PlaceholderAtP {
		prefix = "@p"
	}

	var out strings.Builder
	out.Grow(len(sql) + 3*len(positions))
	last := 0
	for n, pos := range positions {
		out.WriteString(sql[last:pos])
		out.WriteString(prefix)
		out.WriteString(strconv.Itoa(n + 1))
		last = pos + 1
	}
	out.WriteString(sql[last:])
	return out.String()
}

// CountPlaceholders returns the number of ? placeholders outside quoted text.
func CountPlaceholders(sql string) int {
	return len(placeholders(sql, false))
}

// placeholders returns the byte offsets of every ? outside single, double or
// backtick quotes (and square brackets when brackets is set).
func placeholders(sql string, brackets bool) []int {
	var out []int
	var closing byte
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		switch {
		case closing != 0:
			if ch == closing {
				closing = 0
			}
		case ch == '\'' || ch == '"' || ch == '`':
			closing = ch
		case ch == '[' && brackets:
			closing = ']'
		case ch == '?':
			out = append(out, i)
		}
	}
	return out
}
