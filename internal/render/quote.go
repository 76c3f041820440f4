package render

import (
	"regexp"
	"strings"
)

var (
	bareTable  = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)
	aliasTable = regexp.MustCompile(`^([A-Za-z0-9_.]+)\s+(?i:AS\s+)?([A-Za-z0-9_]+)$`)
)

// QuoteName quotes every segment of a dotted identifier except "*".
//
//	users.id -> `users`.`id`
//	users.*  -> `users`.*
func (b *Base) QuoteName(name string) string {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		if part == "*" {
			continue
		}
		parts[i] = b.quoteSegment(part)
	}
	return strings.Join(parts, ".")
}

func (b *Base) quoteSegment(s string) string {
	if b.segment != nil {
		return b.segment(s)
	}
	return b.open + strings.ReplaceAll(s, b.close, b.close+b.close) + b.close
}

// QuoteSQL replaces !identifier markers with quoted identifiers. Markers
// inside single- or double-quoted literals are left untouched.
//
//	!users.id = ? -> `users`.`id` = ?
func (b *Base) QuoteSQL(sql string) string {
	if !strings.Contains(sql, "!") {
		return sql
	}

	var out strings.Builder
	out.Grow(len(sql) + 8)

	var quote byte
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
			out.WriteByte(ch)
		case ch == '"' || ch == '\'':
			quote = ch
			out.WriteByte(ch)
		case ch == '!':
			j := i + 1
			for j < len(sql) && isMarkerChar(sql[j]) {
				j++
			}
			if j == i+1 {
				out.WriteByte(ch)
				continue
			}
			out.WriteString(b.QuoteName(sql[i+1 : j]))
			i = j - 1
		default:
			out.WriteByte(ch)
		}
	}
	return out.String()
}

// QuoteTable quotes a table reference. Bare names, optionally followed by an
// alias ("users u" or "users AS u"), are quoted as identifiers; anything else
// is treated as raw SQL and passed through QuoteSQL.
func (b *Base) QuoteTable(name string) string {
	name = strings.TrimSpace(name)
	if bareTable.MatchString(name) {
		return b.QuoteName(name)
	}
	if m := aliasTable.FindStringSubmatch(name); m != nil {
		return b.QuoteName(m[1]) + " AS " + b.QuoteName(m[2])
	}
	return b.QuoteSQL(name)
}

func isMarkerChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_' || ch == '.' || ch == '*'
}
