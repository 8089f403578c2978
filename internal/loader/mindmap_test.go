package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tordrt/schemaforge/internal/schema"
)

// userOrderMindMap describes the same schema as userOrderJSON.
const userOrderMindMap = `<map version="1.0.1">
<node TEXT="shop" ID="ID_0">
  <node TEXT="User" ID="ID_10">
    <node TEXT="id" ID="ID_11">
      <icon BUILTIN="wizard"/>
      <linktarget COLOR="#b0b0b0" DESTINATION="ID_11" ENDARROW="Default" ID="Arrow_ID_1" SOURCE="ID_22"/>
      <node TEXT="int" ID="ID_111"/>
    </node>
    <node TEXT="name" ID="ID_12">
      <node TEXT="varchar" ID="ID_121">
        <node TEXT="64" ID="ID_1211"/>
      </node>
    </node>
    <node TEXT="email" ID="ID_13">
      <icon BUILTIN="bookmark"/>
      <node TEXT="varchar" ID="ID_131"/>
      <node TEXT="default" ID="ID_132">
        <node TEXT="none@x.com" ID="ID_1321"/>
      </node>
    </node>
    <node TEXT="age" ID="ID_14">
      <node TEXT="smallint" ID="ID_141"/>
      <node TEXT="default" ID="ID_142">
        <node TEXT="18" ID="ID_1421"/>
      </node>
    </node>
  </node>
  <node ID="ID_20">
    <richcontent TYPE="NODE"><html><body><p>order</p></body></html></richcontent>
    <node TEXT="id" ID="ID_21">
      <icon BUILTIN="wizard"/>
      <node TEXT="bigint" ID="ID_211"/>
    </node>
    <node TEXT="user_id" ID="ID_22">
      <arrowlink DESTINATION="ID_11" ENDARROW="Default" ID="Arrow_ID_1" STARTARROW="None"/>
      <node TEXT="int" ID="ID_221">
        <node TEXT="11" ID="ID_2211"/>
      </node>
    </node>
  </node>
</node>
</map>`

func TestLoadMindMap(t *testing.T) {
	s, err := LoadMindMap(strings.NewReader(userOrderMindMap))
	if err != nil {
		t.Fatalf("LoadMindMap() error = %v", err)
	}

	tables := s.Tables()
	if len(tables) != 2 {
		t.Fatalf("got %d tables, want 2", len(tables))
	}
	if tables[1].Name() != "order" {
		t.Errorf("richcontent label = %q, want order", tables[1].Name())
	}

	user := s.Table("User")
	if !user.Column("id").IsPrimary() {
		t.Error("wizard icon did not mark User.id primary")
	}
	if !user.Column("email").IsUnique() {
		t.Error("bookmark icon did not mark User.email unique")
	}
	if n, ok := user.Column("name").ExplicitLength(); !ok || n != 64 {
		t.Errorf("User.name length = %d, %v; want 64", n, ok)
	}
	if v, ok := user.Column("age").Default(); !ok || v != "18" {
		t.Errorf("User.age default = %q, %v; want 18", v, ok)
	}
	if _, ok := user.Column("id").Default(); ok {
		t.Error("User.id should have no default")
	}

	fk := s.Table("order").Column("user_id").ForeignKey()
	if fk != user.Column("id") {
		t.Errorf("order.user_id foreign key = %v, want User.id", fk)
	}
}

func TestLoadMindMapMatchesJSON(t *testing.T) {
	fromMap, err := LoadMindMap(strings.NewReader(userOrderMindMap))
	if err != nil {
		t.Fatal(err)
	}
	fromJSON, err := LoadJSON(userOrderJSON)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := fromMap.CreateSQL(), fromJSON.CreateSQL(); got != want {
		t.Errorf("mind map DDL differs from JSON DDL\ngot:\n%s\nwant:\n%s", got, want)
	}

	mapJSON, err := MarshalJSON(fromMap)
	if err != nil {
		t.Fatal(err)
	}
	jsonJSON, err := MarshalJSON(fromJSON)
	if err != nil {
		t.Fatal(err)
	}
	if string(mapJSON) != string(jsonJSON) {
		t.Errorf("exports differ\nmind map:\n%s\njson:\n%s", mapJSON, jsonJSON)
	}
}

func TestLoadMindMapLinkByDestination(t *testing.T) {
	doc := `<map><node TEXT="db">
	  <node TEXT="b">
	    <node TEXT="id" ID="B1"><node TEXT="int"/></node>
	  </node>
	  <node TEXT="a">
	    <node TEXT="b_id" ID="A1"><arrowlink DESTINATION="B1"/><node TEXT="int"/></node>
	    <node TEXT="parent_id" ID="A2"><arrowlink DESTINATION="A2"/><node TEXT="int"/></node>
	  </node>
	</node></map>`

	s, err := LoadMindMap(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadMindMap() error = %v", err)
	}
	if s.Table("a").Column("b_id").ForeignKey() != s.Table("b").Column("id") {
		t.Error("arrowlink DESTINATION did not resolve to b.id")
	}
	if c := s.Table("a").Column("parent_id"); c.ForeignKey() != c {
		t.Error("self link did not resolve to a.parent_id")
	}
}

// laterTargetMindMap links order.user_id to a table that comes after it.
const laterTargetMindMap = `<map><node TEXT="shop">
  <node TEXT="order">
    <node TEXT="id"><icon BUILTIN="wizard"/><node TEXT="bigint"/></node>
    <node TEXT="user_id"><arrowlink ID="Arrow_ID_1" DESTINATION="U1"/><node TEXT="int"/></node>
  </node>
  <node TEXT="user">
    <node TEXT="id" ID="U1"><icon BUILTIN="wizard"/><linktarget ID="Arrow_ID_1"/><node TEXT="int"/></node>
  </node>
</node></map>`

func TestLoadMindMapRejectsLaterTarget(t *testing.T) {
	s, err := LoadMindMap(strings.NewReader(laterTargetMindMap))
	if !errors.Is(err, schema.ErrUnknownReference) {
		t.Fatalf("LoadMindMap() error = %v, want %v", err, schema.ErrUnknownReference)
	}
	if s != nil {
		t.Error("failed load should return a nil schema")
	}
}

func TestMindMapExportReloads(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "user and order", doc: userOrderMindMap},
		{
			name: "self and earlier links",
			doc: `<map><node TEXT="db">
			  <node TEXT="b"><node TEXT="id" ID="B1"><node TEXT="int"/></node></node>
			  <node TEXT="a">
			    <node TEXT="b_id"><arrowlink DESTINATION="B1"/><node TEXT="int"/></node>
			    <node TEXT="parent_id" ID="A2"><arrowlink DESTINATION="A2"/><node TEXT="int"/></node>
			  </node>
			</node></map>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := LoadMindMap(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("LoadMindMap() error = %v", err)
			}
			data, err := MarshalJSON(s)
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			reloaded, err := DecodeJSON(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("DecodeJSON(exported) error = %v\n%s", err, data)
			}
			if got, want := reloaded.CreateSQL(), s.CreateSQL(); got != want {
				t.Errorf("DDL changed across export\ngot:\n%s\nwant:\n%s", got, want)
			}
			if m := reloaded.Diff(s, schema.WithColumnScope(schema.ColumnScopeTable)); !m.Empty() {
				t.Errorf("reloaded schema differs:\n%s", m.SQL())
			}
		})
	}
}

func TestLoadMindMapFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.mm")
	if err := os.WriteFile(path, []byte(userOrderMindMap), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadMindMapFile(path)
	if err != nil {
		t.Fatalf("LoadMindMapFile() error = %v", err)
	}
	if len(s.Tables()) != 2 {
		t.Errorf("got %d tables, want 2", len(s.Tables()))
	}
}

func TestLoadMindMapErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{name: "not XML", doc: `<map><node`, wantErr: schema.ErrInvalidFormat},
		{name: "no root node", doc: `<map version="1.0.1"></map>`, wantErr: schema.ErrInvalidFormat},
		{
			name:    "unknown type",
			doc:     `<map><node TEXT="db"><node TEXT="t"><node TEXT="c"><node TEXT="datetime"/></node></node></node></map>`,
			wantErr: schema.ErrUnsupportedType,
		},
		{
			name:    "missing type",
			doc:     `<map><node TEXT="db"><node TEXT="t"><node TEXT="c"/></node></node></map>`,
			wantErr: schema.ErrUnsupportedType,
		},
		{
			name:    "bad length",
			doc:     `<map><node TEXT="db"><node TEXT="t"><node TEXT="c"><node TEXT="int"><node TEXT="wide"/></node></node></node></node></map>`,
			wantErr: schema.ErrInvalidFormat,
		},
		{
			name: "duplicate column",
			doc: `<map><node TEXT="db"><node TEXT="t">
				<node TEXT="c"><node TEXT="int"/></node>
				<node TEXT="c"><node TEXT="int"/></node>
			</node></node></map>`,
			wantErr: schema.ErrDuplicateColumnName,
		},
		{
			name:    "unresolved link",
			doc:     `<map><node TEXT="db"><node TEXT="t"><node TEXT="c"><arrowlink ID="Arrow_ID_9" DESTINATION="ID_9"/><node TEXT="int"/></node></node></node></map>`,
			wantErr: schema.ErrUnknownReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := LoadMindMap(strings.NewReader(tt.doc))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("LoadMindMap() error = %v, want %v", err, tt.wantErr)
			}
			if s != nil {
				t.Error("failed load should return a nil schema")
			}
		})
	}
}
