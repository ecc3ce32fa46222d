// Package annotate injects cross-language navigation metadata into HTML
// documents: an alternate-language link in the head and a small fixed-position
// switch control in the body. Annotation is idempotent; each run removes the
// previously injected elements before inserting fresh ones.
package annotate

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/ZaguanLabs/sitetrans"
	"github.com/ZaguanLabs/sitetrans/processor"
)

// SwitcherID identifies the injected language-switch control so a later run
// can find and replace it.
const SwitcherID = "lang-switcher"

const switcherStyle = "position:fixed;bottom:12px;right:12px;z-index:9999;" +
	"font-family:inherit;font-size:13px;background:#fff;border:1px solid #ddd;" +
	"border-radius:6px;padding:6px 10px;box-shadow:0 2px 8px rgba(0,0,0,0.08)"

// Annotator links a source-language document tree with its translated
// counterpart nested under localeDir. Relative paths handed to the annotate
// methods are slash-separated and relative to the corpus root.
type Annotator struct {
	source    string
	target    string
	localeDir string
}

// New returns an Annotator for the given language pair. Language codes are
// reduced to their base form for lang and hreflang attributes; localeDir
// defaults to the target base code when empty.
func New(sourceLang, targetLang, localeDir string) *Annotator {
	src := sitetrans.BaseLang(sourceLang)
	tgt := sitetrans.BaseLang(targetLang)
	if localeDir == "" {
		localeDir = tgt
	}
	return &Annotator{source: src, target: tgt, localeDir: localeDir}
}

// AnnotateOutput marks a translated document: sets the target language on the
// root element and links back to the source document. The output tree sits one
// level below the corpus root, so the back reference ascends depth+1 levels.
func (a *Annotator) AnnotateOutput(doc *processor.Document, relPath string) {
	a.strip(doc)

	root := doc.Find("html")
	root.SetAttr("lang", a.target)
	if sitetrans.IsRTL(a.target) {
		root.SetAttr("dir", "rtl")
	}

	href := upLevels(depth(relPath)+1) + relPath
	a.inject(doc, href, a.source)
}

// AnnotateSource marks an original-language document in place, linking
// forward to its translation under the locale subdirectory. An existing lang
// attribute on the root element is preserved.
func (a *Annotator) AnnotateSource(doc *processor.Document, relPath string) {
	a.strip(doc)

	root := doc.Find("html")
	if lang, ok := root.Attr("lang"); !ok || strings.TrimSpace(lang) == "" {
		root.SetAttr("lang", a.source)
	}

	href := upLevels(depth(relPath)) + a.localeDir + "/" + relPath
	a.inject(doc, href, a.target)
}

// strip removes the alternate links and the switch control left by an earlier
// run, covering both languages of the pair.
func (a *Annotator) strip(doc *processor.Document) {
	for _, lang := range []string{a.source, a.target} {
		doc.Find(`head link[rel="alternate"][hreflang="` + lang + `"]`).Remove()
	}
	doc.Find("#" + SwitcherID).Remove()
}

// inject appends the alternate link to the head and the switch control to the
// body. The parser guarantees both elements exist on any parsed document. The
// control carries data-no-translate so a later translation pass leaves its
// label alone.
func (a *Annotator) inject(doc *processor.Document, href, hreflang string) {
	escHref := html.EscapeString(href)
	escLang := html.EscapeString(hreflang)

	doc.Find("head").AppendHtml(
		`<link rel="alternate" hreflang="` + escLang + `" href="` + escHref + `">`)

	label := html.EscapeString(sitetrans.NativeName(hreflang))
	doc.Find("body").AppendHtml(
		`<div id="` + SwitcherID + `" data-no-translate="" style="` + switcherStyle + `">` +
			`<a href="` + escHref + `" hreflang="` + escLang + `">` + label + `</a></div>`)
}

func depth(relPath string) int {
	return strings.Count(relPath, "/")
}

func upLevels(n int) string {
	return strings.Repeat("../", n)
}
