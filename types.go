package sitetrans

import "golang.org/x/net/html"

// UnitKind classifies where a translatable unit lives in a document.
type UnitKind string

const (
	// UnitText is a contiguous run of literal text inside an element.
	UnitText UnitKind = "text"
	// UnitAttr is the value of a whitelisted translatable attribute.
	UnitAttr UnitKind = "attr"
	// UnitMeta is the content value of a description-carrying meta tag.
	UnitMeta UnitKind = "meta"
)

// Unit represents one translatable unit of a document. The Node pointer is
// the unit's stable origin reference: it stays valid for the lifetime of the
// parsed document, so the i-th extracted unit can always be written back to
// the i-th original location.
type Unit struct {
	Kind UnitKind   // text, attr or meta
	Text string     // trimmed text content at extraction time
	Node *html.Node // origin: the text node itself, or the owning element
	Attr string     // attribute name for attr/meta units ("" for text runs)
}

// Stats summarizes one orchestrated translation pass.
type Stats struct {
	Total      int // texts submitted, duplicates included
	Unique     int // distinct texts after pre-glossary rewriting
	Cached     int // unique texts resolved from the cache
	Translated int // unique texts resolved by the translation service
}

// Add accumulates s2 into s.
func (s *Stats) Add(s2 Stats) {
	s.Total += s2.Total
	s.Unique += s2.Unique
	s.Cached += s2.Cached
	s.Translated += s2.Translated
}

// ExcludedTags contains HTML tags whose subtrees are never translated.
var ExcludedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"noscript": true,
}

// NoTranslateAttr marks an element whose subtree opts out of translation.
const NoTranslateAttr = "data-no-translate"

// TranslatableAttrs lists the attributes whose values are translated, in the
// order they are collected from each element.
var TranslatableAttrs = []string{"title", "alt", "aria-label", "placeholder"}

// MetaSelector matches a meta tag by one identifying attribute value.
type MetaSelector struct {
	Attr  string
	Value string
}

// MetaDescriptionSelectors lists the meta tags whose content is translated.
var MetaDescriptionSelectors = []MetaSelector{
	{Attr: "name", Value: "description"},
	{Attr: "property", Value: "og:description"},
}

// RTLLanguages contains language codes that use right-to-left text direction.
var RTLLanguages = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Persian/Farsi
	"ur": true, // Urdu
	"ps": true, // Pashto
	"sd": true, // Sindhi
	"ug": true, // Uyghur
}
