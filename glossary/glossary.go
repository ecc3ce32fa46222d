// Package glossary loads and applies forced term mappings.
//
// A rule set rewrites text twice per pipeline pass: before translation, so
// the service receives canonical source terms and the rewritten text keys
// the cache, and again on the service output, so a source term the service
// echoed untranslated still ends up as the canonical target term.
package glossary

import (
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/ZaguanLabs/sitetrans"
)

// Mode selects how a rule's pattern matches.
type Mode string

const (
	// ModeExact replaces every occurrence of the pattern as a literal substring.
	ModeExact Mode = "exact"
	// ModeRegex replaces every match of the pattern as a regular expression.
	ModeRegex Mode = "regex"
)

// Rule is one forced term mapping. Applying a rule that does not match is a
// no-op.
type Rule struct {
	Pattern     string
	Replacement string
	Mode        Mode

	re *regexp.Regexp // compiled pattern for ModeRegex
}

// Apply rewrites every match of the rule's pattern in text.
func (r Rule) Apply(text string) string {
	if r.Mode == ModeRegex {
		if r.re == nil {
			return text
		}
		return r.re.ReplaceAllString(text, r.Replacement)
	}
	return strings.ReplaceAll(text, r.Pattern, r.Replacement)
}

// Rules is an ordered rule set. Rules apply in file order; later rules see
// the output of earlier ones.
type Rules struct {
	rules []Rule
}

// Apply rewrites text through every rule in order.
func (rs *Rules) Apply(text string) string {
	if rs == nil {
		return text
	}
	for _, rule := range rs.rules {
		text = rule.Apply(text)
	}
	return text
}

// Len returns the number of loaded rules.
func (rs *Rules) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// All returns a copy of the rule list, in application order.
func (rs *Rules) All() []Rule {
	if rs == nil {
		return nil
	}
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// ParseCSV reads rules from tabular data: one rule per row as
// (source pattern, target text, mode). The first row is a header and is
// skipped. Rows with a missing pattern or replacement, unparseable rows and
// rules with an invalid regular expression are skipped; the remaining rules
// still apply. The mode column defaults to exact-substring matching ("dt"
// is accepted as a legacy spelling of "exact").
func ParseCSV(r io.Reader) (*Rules, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rules := &Rules{}
	header := true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row: skip it, keep the rest
			continue
		}
		if header {
			header = false
			continue
		}
		if len(record) < 2 {
			continue
		}

		pattern := strings.TrimSpace(record[0])
		replacement := strings.TrimSpace(record[1])
		if pattern == "" {
			continue
		}

		mode := ModeExact
		if len(record) > 2 {
			switch strings.ToLower(strings.TrimSpace(record[2])) {
			case "regex":
				mode = ModeRegex
			case "exact", "dt", "":
				mode = ModeExact
			default:
				mode = ModeExact
			}
		}

		rule := Rule{Pattern: pattern, Replacement: replacement, Mode: mode}
		if mode == ModeRegex {
			re, err := regexp.Compile(pattern)
			if err != nil {
				// Bad pattern: skip this rule, others still apply
				continue
			}
			rule.re = re
		}

		rules.rules = append(rules.rules, rule)
	}

	return rules, nil
}

// LoadFile reads a glossary CSV file. A missing file yields an empty rule
// set and no error; any other read failure is returned.
func LoadFile(path string) (*Rules, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Rules{}, nil
		}
		return nil, err
	}
	defer f.Close()

	return ParseCSV(f)
}

// Verify Rules satisfies the orchestrator's glossary interface
var _ sitetrans.Glossary = (*Rules)(nil)
