package postgres

import (
	_ "embed"
	"strings"
)

//go:embed schema.sql
var schemaSQL string

// ddlStatements splits the embedded schema into executable statements.
func ddlStatements() []string {
	var out []string
	for _, stmt := range strings.Split(schemaSQL, ";") {
		var lines []string
		for _, line := range strings.Split(stmt, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}
		s := strings.TrimSpace(strings.Join(lines, "\n"))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
