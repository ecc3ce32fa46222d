package processor

import (
	"bytes"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/ZaguanLabs/sitetrans"
)

// Document is a single parsed HTML page. The same tree is shared by unit
// extraction, reinsertion and locale annotation, so node pointers handed out
// by ExtractUnits stay valid until the document is rendered.
type Document struct {
	doc     *goquery.Document
	root    *html.Node
	doctype string
}

// Parse decodes and parses an HTML document. The byte stream may be in any
// encoding declared by its meta tags or detectable from its content; it is
// converted to UTF-8 before parsing.
func Parse(data []byte) (*Document, error) {
	doctype := captureDoctype(data)

	reader, err := charset.NewReader(bytes.NewReader(data), "")
	if err != nil {
		return nil, &sitetrans.ProcessorError{Message: "detecting charset", Cause: err}
	}

	root, err := html.Parse(reader)
	if err != nil {
		return nil, &sitetrans.ProcessorError{Message: "parsing document", Cause: err}
	}

	return &Document{
		doc:     goquery.NewDocumentFromNode(root),
		root:    root,
		doctype: doctype,
	}, nil
}

// ParseString parses an HTML document from a UTF-8 string.
func ParseString(s string) (*Document, error) {
	return Parse([]byte(s))
}

// ParseFile reads and parses an HTML file from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- caller-controlled path
	if err != nil {
		return nil, &sitetrans.ProcessorError{Message: "reading document", Cause: err, Path: path}
	}

	d, err := Parse(data)
	if err != nil {
		if perr, ok := err.(*sitetrans.ProcessorError); ok {
			perr.Path = path
		}
		return nil, err
	}
	return d, nil
}

// Root returns the document root node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Find runs a goquery selector against the document.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Doctype returns the doctype declaration found at the top of the source
// document, or an empty string if there was none.
func (d *Document) Doctype() string {
	return d.doctype
}

// ExtractUnits walks the document once and collects every translatable unit:
// non-empty text nodes, whitelisted element attributes and description meta
// tags. Subtrees under excluded tags or under any element marked with
// data-no-translate are skipped entirely. Units are returned grouped by kind,
// text nodes first, then attributes, then meta descriptions, each group in
// document order. Duplicate texts are kept; deduplication belongs to the
// translation layer.
func (d *Document) ExtractUnits() []Unit {
	var texts, attrs, metas []Unit

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if sitetrans.ExcludedTags[strings.ToLower(n.Data)] {
				return
			}
			if hasAttr(n, sitetrans.NoTranslateAttr) {
				return
			}

			for _, name := range sitetrans.TranslatableAttrs {
				if val, ok := getAttr(n, name); ok {
					if trimmed := strings.TrimSpace(val); trimmed != "" {
						attrs = append(attrs, Unit{Kind: sitetrans.UnitAttr, Text: trimmed, Node: n, Attr: name})
					}
				}
			}

			if strings.EqualFold(n.Data, "meta") {
				for _, sel := range sitetrans.MetaDescriptionSelectors {
					if val, ok := getAttr(n, sel.Attr); !ok || !strings.EqualFold(val, sel.Value) {
						continue
					}
					if content, ok := getAttr(n, "content"); ok {
						if trimmed := strings.TrimSpace(content); trimmed != "" {
							metas = append(metas, Unit{Kind: sitetrans.UnitMeta, Text: trimmed, Node: n, Attr: "content"})
						}
					}
				}
			}
		}

		if n.Type == html.TextNode {
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				texts = append(texts, Unit{Kind: sitetrans.UnitText, Text: trimmed, Node: n})
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)

	units := make([]Unit, 0, len(texts)+len(attrs)+len(metas))
	units = append(units, texts...)
	units = append(units, attrs...)
	units = append(units, metas...)
	return units
}

// Apply writes final texts back into the document. finals[i] replaces the
// content of units[i]; text nodes keep their original leading and trailing
// whitespace. When finals is shorter than units the remaining units are
// emptied rather than left untranslated.
func (d *Document) Apply(units []Unit, finals []string) {
	for i, unit := range units {
		text := ""
		if i < len(finals) {
			text = finals[i]
		}

		switch unit.Kind {
		case sitetrans.UnitText:
			unit.Node.Data = preserveWhitespace(unit.Node.Data, text)
		case sitetrans.UnitAttr, sitetrans.UnitMeta:
			setAttr(unit.Node, unit.Attr, text)
		}
	}
}

// Render serializes the document back to HTML. The doctype declaration from
// the source document, if any, is restored exactly as it was found.
func (d *Document) Render() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return "", &sitetrans.ProcessorError{Message: "rendering document", Cause: err}
	}
	return restoreDoctype(buf.String(), d.doctype), nil
}

// preserveWhitespace transfers the leading and trailing whitespace of the
// original text node onto the translated text.
func preserveWhitespace(original, translated string) string {
	leading := original[:len(original)-len(strings.TrimLeft(original, " \t\n\r"))]
	trailing := original[len(strings.TrimRight(original, " \t\n\r")):]
	return leading + translated + trailing
}

// captureDoctype returns the doctype declaration leading the raw document,
// byte for byte, or an empty string when the document has none. A doctype is
// ASCII, so scanning the raw bytes is safe in any ASCII-compatible encoding.
func captureDoctype(data []byte) string {
	head := data
	if len(head) > 4096 {
		head = head[:4096]
	}

	head = bytes.TrimPrefix(head, []byte{0xEF, 0xBB, 0xBF})
	trimmed := bytes.TrimLeft(head, " \t\r\n")
	if len(trimmed) < len("<!doctype") {
		return ""
	}
	if !strings.EqualFold(string(trimmed[:len("<!doctype")]), "<!doctype") {
		return ""
	}

	end := bytes.IndexByte(trimmed, '>')
	if end < 0 {
		return ""
	}
	return string(trimmed[:end+1])
}

// restoreDoctype swaps the serializer's doctype for the original declaration,
// or prepends the original when serialization produced none.
func restoreDoctype(out, doctype string) string {
	if doctype == "" {
		return out
	}

	trimmed := strings.TrimLeft(out, " \t\r\n")
	if len(trimmed) >= len("<!doctype") && strings.EqualFold(trimmed[:len("<!doctype")], "<!doctype") {
		if end := strings.IndexByte(trimmed, '>'); end >= 0 {
			return doctype + trimmed[end+1:]
		}
	}
	return doctype + "\n" + out
}

func getAttr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, name string) bool {
	_, ok := getAttr(n, name)
	return ok
}

func setAttr(n *html.Node, name, val string) {
	for i, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: val})
}
