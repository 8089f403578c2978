package schema

import "strings"

// CreateSQL renders a script that drops and recreates every table in schema
// order. Foreign keys are model metadata only and are not rendered.
func (s *Schema) CreateSQL(opts ...Option) string {
	o := newOptions(opts)

	blocks := make([]string, 0, len(s.tables))
	for _, t := range s.tables {
		blocks = append(blocks, dropTable(t)+"\n"+createTable(t, o))
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}
