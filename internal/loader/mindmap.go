package loader

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/tordrt/schemaforge/internal/logging"
	"github.com/tordrt/schemaforge/internal/schema"
)

const formatMindMap = "mind map"

// Icons that flag a column node.
const (
	iconPrimary = "wizard"
	iconUnique  = "bookmark"
)

var (
	rootExpr        = xpath.MustCompile("/map/node")
	childNodeExpr   = xpath.MustCompile("node")
	iconExpr        = xpath.MustCompile("icon")
	arrowlinkExpr   = xpath.MustCompile("arrowlink")
	linktargetExpr  = xpath.MustCompile("linktarget")
	richcontentExpr = xpath.MustCompile("richcontent")
)

// columnNode pairs a built column with the XML element it came from.
type columnNode struct {
	column *schema.Column
	node   *xmlquery.Node
}

// LoadMindMapFile builds a schema from the FreeMind file at path.
func LoadMindMapFile(path string) (*schema.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mind map: %w", err)
	}
	defer f.Close()

	return loadMindMap(f, path)
}

// LoadMindMap builds a schema from a FreeMind document.
//
// The root node's children are tables and their children are columns. A
// column's first child node names its type, optionally with the explicit
// length as a grandchild; its second child node holds the default value as
// a grandchild. A "wizard" icon marks a primary key and a "bookmark" icon
// a unique column. An arrowlink makes the column a foreign key to the
// column carrying the matching linktarget. As with JSON foreign keys, the
// target must come earlier in the map or be the column itself.
func LoadMindMap(r io.Reader) (*schema.Schema, error) {
	return loadMindMap(r, "")
}

func loadMindMap(r io.Reader, source string) (*schema.Schema, error) {
	formatErr := func(msg string, err error) error {
		return &schema.FormatError{Format: formatMindMap, Source: source, Message: msg, Err: err}
	}

	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, formatErr("not well-formed XML", err)
	}
	root := xmlquery.QuerySelector(doc, rootExpr)
	if root == nil {
		return nil, formatErr("missing /map/node root", nil)
	}

	s := schema.New()
	var columns []columnNode

	for _, tableNode := range xmlquery.QuerySelectorAll(root, childNodeExpr) {
		name := nodeLabel(tableNode)
		if name == "" {
			return nil, formatErr("table node has no TEXT", nil)
		}
		t := schema.NewTable(name)
		s.AddTable(t)

		colNodes := xmlquery.QuerySelectorAll(tableNode, childNodeExpr)
		for _, n := range colNodes {
			c, err := buildMindMapColumn(t, n, source)
			if err != nil {
				return nil, err
			}
			columns = append(columns, columnNode{column: c, node: n})

			if a := xmlquery.QuerySelector(n, arrowlinkExpr); a != nil {
				target := resolveLink(columns, a)
				if target == nil {
					return nil, fmt.Errorf("%w: arrowlink %q from %s.%s has no earlier target",
						schema.ErrUnknownReference, linkName(a), t.Name(), c.Name())
				}
				c.SetForeignKey(target)
			}
		}
		logging.Debug("loaded table", "source", formatMindMap, "table", name, "columns", len(colNodes))
	}

	return s, nil
}

func buildMindMapColumn(t *schema.Table, n *xmlquery.Node, source string) (*schema.Column, error) {
	invalid := func(format string, args ...any) error {
		return &schema.FormatError{Format: formatMindMap, Source: source, Message: fmt.Sprintf(format, args...)}
	}

	name := nodeLabel(n)
	if name == "" {
		return nil, invalid("column node in table %s has no TEXT", t.Name())
	}

	children := xmlquery.QuerySelectorAll(n, childNodeExpr)
	var typeLabel string
	if len(children) > 0 {
		typeLabel = nodeLabel(children[0])
	}
	typ, err := schema.ParseColumnType(typeLabel)
	if err != nil {
		return nil, fmt.Errorf("column %s.%s: %w", t.Name(), name, err)
	}
	c, err := schema.NewColumn(name, typ)
	if err != nil {
		return nil, err
	}

	if len(children) > 0 {
		if ln := xmlquery.QuerySelector(children[0], childNodeExpr); ln != nil {
			label := strings.TrimSpace(nodeLabel(ln))
			length, err := strconv.Atoi(label)
			if err != nil || length < 0 {
				return nil, invalid("column %s.%s: length %q is not an integer", t.Name(), name, label)
			}
			if length > 0 {
				c.SetLength(length)
			}
		}
	}

	if err := t.AddColumn(c); err != nil {
		return nil, err
	}

	for _, icon := range xmlquery.QuerySelectorAll(n, iconExpr) {
		switch icon.SelectAttr("BUILTIN") {
		case iconPrimary:
			c.SetPrimary()
		case iconUnique:
			c.SetUnique()
		}
	}

	if len(children) > 1 {
		if dn := xmlquery.QuerySelector(children[1], childNodeExpr); dn != nil {
			c.SetDefault(nodeLabel(dn))
		}
	}

	return c, nil
}

// resolveLink finds, among the columns built so far, the one an arrowlink
// points at: the one carrying a linktarget with the same ID, or else the one
// whose node ID is the link's DESTINATION.
func resolveLink(columns []columnNode, link *xmlquery.Node) *schema.Column {
	if id := link.SelectAttr("ID"); id != "" {
		for _, cn := range columns {
			for _, lt := range xmlquery.QuerySelectorAll(cn.node, linktargetExpr) {
				if lt.SelectAttr("ID") == id {
					return cn.column
				}
			}
		}
	}
	if dest := link.SelectAttr("DESTINATION"); dest != "" {
		for _, cn := range columns {
			if cn.node.SelectAttr("ID") == dest {
				return cn.column
			}
		}
	}
	return nil
}

func linkName(link *xmlquery.Node) string {
	if id := link.SelectAttr("ID"); id != "" {
		return id
	}
	return link.SelectAttr("DESTINATION")
}

// nodeLabel returns a node's TEXT attribute, or the text of its
// richcontent child when TEXT is absent.
func nodeLabel(n *xmlquery.Node) string {
	if text := n.SelectAttr("TEXT"); text != "" {
		return text
	}
	if rc := xmlquery.QuerySelector(n, richcontentExpr); rc != nil {
		return strings.Join(strings.Fields(rc.InnerText()), " ")
	}
	return ""
}
