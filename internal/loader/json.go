// Package loader builds schemas from JSON configuration documents and
// FreeMind mind maps, and exports schemas back to JSON.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tordrt/schemaforge/internal/logging"
	"github.com/tordrt/schemaforge/internal/schema"
)

const formatJSON = "JSON"

// document is the JSON configuration layout.
type document struct {
	Tables []tableDoc `json:"tables"`
}

type tableDoc struct {
	Name    string      `json:"name"`
	Columns []columnDoc `json:"columns"`
}

// columnDoc keeps length and default raw so that both "absent" and
// "null" survive decoding and string columns can export "length": null.
type columnDoc struct {
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Length     json.RawMessage `json:"length,omitempty"`
	Primary    bool            `json:"primary,omitempty"`
	Unique     bool            `json:"unique,omitempty"`
	Default    json.RawMessage `json:"default,omitempty"`
	ForeignKey string          `json:"foreignkey,omitempty"`
}

// LoadJSON builds a schema from input, which is either a JSON document or
// the path of a file containing one. Input starting with '{' or '[' is
// treated as a document.
func LoadJSON(input string) (*schema.Schema, error) {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return decodeDocument([]byte(trimmed), "")
	}
	return LoadJSONFile(input)
}

// LoadJSONFile builds a schema from the JSON file at path.
func LoadJSONFile(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON config: %w", err)
	}
	return decodeDocument(data, path)
}

// DecodeJSON builds a schema from the JSON document read from r.
func DecodeJSON(r io.Reader) (*schema.Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON config: %w", err)
	}
	return decodeDocument(data, "")
}

func decodeDocument(data []byte, source string) (*schema.Schema, error) {
	formatErr := func(msg string, err error) error {
		return &schema.FormatError{Format: formatJSON, Source: source, Message: msg, Err: err}
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, formatErr("top-level value must be a JSON object", err)
	}
	if top == nil {
		return nil, formatErr("top-level value must be a JSON object", nil)
	}
	rawTables, ok := top["tables"]
	if !ok {
		return nil, formatErr(`missing "tables" list`, nil)
	}

	var doc document
	if err := json.Unmarshal(rawTables, &doc.Tables); err != nil {
		return nil, formatErr(`"tables" must be a list of table objects`, err)
	}

	s := schema.New()
	for i, td := range doc.Tables {
		if td.Name == "" {
			return nil, formatErr(fmt.Sprintf("tables[%d] has no name", i), nil)
		}
		t := schema.NewTable(td.Name)
		s.AddTable(t)

		for j, cd := range td.Columns {
			if cd.Name == "" {
				return nil, formatErr(fmt.Sprintf("%s.columns[%d] has no name", td.Name, j), nil)
			}
			if err := buildColumn(s, t, cd, source); err != nil {
				return nil, err
			}
		}
		logging.Debug("loaded table", "source", formatJSON, "table", td.Name, "columns", len(td.Columns))
	}

	return s, nil
}

// buildColumn creates the column described by cd, adds it to t and applies
// its metadata. Foreign keys resolve against the tables loaded so far.
func buildColumn(s *schema.Schema, t *schema.Table, cd columnDoc, source string) error {
	invalid := func(err error) error {
		return &schema.FormatError{
			Format:  formatJSON,
			Source:  source,
			Message: fmt.Sprintf("column %s.%s: %v", t.Name(), cd.Name, err),
		}
	}

	typ, err := schema.ParseColumnType(cd.Type)
	if err != nil {
		return fmt.Errorf("column %s.%s: %w", t.Name(), cd.Name, err)
	}
	c, err := schema.NewColumn(cd.Name, typ)
	if err != nil {
		return err
	}

	n, ok, err := parseLength(cd.Length)
	if err != nil {
		return invalid(err)
	}
	if ok {
		c.SetLength(n)
	}

	if err := t.AddColumn(c); err != nil {
		return err
	}

	if cd.Primary {
		c.SetPrimary()
	}
	if cd.Unique {
		c.SetUnique()
	}
	if cd.ForeignKey != "" {
		target, err := s.Column(cd.ForeignKey)
		if err != nil {
			return fmt.Errorf("column %s.%s foreign key: %w", t.Name(), cd.Name, err)
		}
		c.SetForeignKey(target)
	}

	v, ok, err := parseDefault(cd.Default)
	if err != nil {
		return invalid(err)
	}
	if ok {
		c.SetDefault(v)
	}

	return nil
}

// parseLength accepts a positive integer or a numeric string. Absent, null,
// zero and empty values mean no explicit length.
func parseLength(raw json.RawMessage) (int, bool, error) {
	v, err := decodeScalar(raw)
	if err != nil {
		return 0, false, fmt.Errorf("length: %w", err)
	}

	var s string
	switch x := v.(type) {
	case nil:
		return 0, false, nil
	case json.Number:
		s = x.String()
	case string:
		s = strings.TrimSpace(x)
	default:
		return 0, false, fmt.Errorf("length must be a number, got %s", raw)
	}
	if s == "" {
		return 0, false, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false, fmt.Errorf("length must be a non-negative integer, got %s", raw)
	}
	if n == 0 {
		return 0, false, nil
	}
	return n, true, nil
}

// parseDefault accepts a string, number or boolean. Absent and null mean
// no default.
func parseDefault(raw json.RawMessage) (string, bool, error) {
	v, err := decodeScalar(raw)
	if err != nil {
		return "", false, fmt.Errorf("default: %w", err)
	}

	switch x := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return x, true, nil
	case json.Number:
		return x.String(), true, nil
	case bool:
		return strconv.FormatBool(x), true, nil
	default:
		return "", false, fmt.Errorf("default must be a scalar, got %s", raw)
	}
}

func decodeScalar(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// MarshalJSON renders s as a pretty-printed JSON configuration document.
func MarshalJSON(s *schema.Schema) ([]byte, error) {
	doc := document{Tables: []tableDoc{}}

	for _, t := range s.Tables() {
		td := tableDoc{Name: t.Name(), Columns: []columnDoc{}}
		for _, c := range t.Columns() {
			cd, err := exportColumn(c)
			if err != nil {
				return nil, fmt.Errorf("failed to export column %s.%s: %w", t.Name(), c.Name(), err)
			}
			td.Columns = append(td.Columns, cd)
		}
		doc.Tables = append(doc.Tables, td)
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON config: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportJSON writes s to w as a JSON configuration document.
func ExportJSON(s *schema.Schema, w io.Writer) error {
	data, err := MarshalJSON(s)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON config: %w", err)
	}
	return nil
}

func exportColumn(c *schema.Column) (columnDoc, error) {
	cd := columnDoc{
		Name:    strings.ToLower(c.Name()),
		Type:    strings.ToLower(c.Type().String()),
		Primary: c.IsPrimary(),
		Unique:  c.IsUnique(),
	}

	// String columns always carry "length", null when unset; numeric columns
	// only carry an explicitly assigned one.
	if n, ok := c.ExplicitLength(); ok {
		cd.Length = json.RawMessage(strconv.Itoa(n))
	} else if c.Type().IsString() {
		cd.Length = json.RawMessage("null")
	}

	if v, ok := c.Default(); ok {
		raw, err := json.Marshal(v)
		if err != nil {
			return columnDoc{}, err
		}
		cd.Default = raw
	}

	if target := c.ForeignKey(); target != nil && target.Table() != nil {
		cd.ForeignKey = target.Table().Name() + "." + strings.ToLower(target.Name())
	}
	return cd, nil
}
