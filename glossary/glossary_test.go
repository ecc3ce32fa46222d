package glossary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCSV_SkipsHeader(t *testing.T) {
	input := "source,target,mode\nООО,MChJ,exact\n"

	rules, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	if rules.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", rules.Len())
	}
	if got := rules.Apply("ООО Ромашка"); got != "MChJ Ромашка" {
		t.Errorf("Apply returned %q", got)
	}
}

func TestParseCSV_ExactReplacesAllOccurrences(t *testing.T) {
	input := "source,target,mode\nглавная,bosh,dt\n"

	rules, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	got := rules.Apply("главная и ещё раз главная")
	want := "bosh и ещё раз bosh"
	if got != want {
		t.Errorf("Apply returned %q, want %q", got, want)
	}
}

func TestParseCSV_RegexMode(t *testing.T) {
	input := "source,target,mode\n[0-9]+ руб,so'm,regex\n"

	rules, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	got := rules.Apply("цена 500 руб сегодня")
	if got != "цена so'm сегодня" {
		t.Errorf("Apply returned %q", got)
	}
}

func TestParseCSV_BadRegexSkipped(t *testing.T) {
	input := "source,target,mode\n[unclosed,x,regex\nok,yes,exact\n"

	rules, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if rules.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (bad regex must be skipped)", rules.Len())
	}
	if got := rules.Apply("ok"); got != "yes" {
		t.Errorf("surviving rule should still apply, got %q", got)
	}
}

func TestParseCSV_ShortAndEmptyRowsSkipped(t *testing.T) {
	input := "source,target,mode\nonlyone\n,empty-pattern\nгород,shahar\n"

	rules, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if rules.Len() != 1 {
		t.Errorf("Len() = %d, want 1", rules.Len())
	}
}

func TestParseCSV_UnknownModeDefaultsToExact(t *testing.T) {
	input := "source,target,mode\nдом,uy,fuzzy\n"

	rules, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if got := rules.Apply("дом"); got != "uy" {
		t.Errorf("Apply returned %q, want %q", got, "uy")
	}
}

func TestRules_ApplyInOrder(t *testing.T) {
	input := "source,target,mode\na,b,exact\nb,c,exact\n"

	rules, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	// Second rule sees the first rule's output
	if got := rules.Apply("a"); got != "c" {
		t.Errorf("Apply returned %q, want %q", got, "c")
	}
}

func TestRules_NoMatchIsNoop(t *testing.T) {
	input := "source,target,mode\nфабрика,fabrika,exact\n"

	rules, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	text := "ничего общего"
	if got := rules.Apply(text); got != text {
		t.Errorf("non-matching rule changed text: %q", got)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	rules, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	if err != nil {
		t.Fatalf("LoadFile should not fail for a missing file: %v", err)
	}
	if rules.Len() != 0 {
		t.Errorf("Len() = %d, want 0", rules.Len())
	}

	// Empty rule set is a no-op
	if got := rules.Apply("text"); got != "text" {
		t.Errorf("empty rule set changed text: %q", got)
	}
}

func TestLoadFile_ReadsRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glossary.csv")
	content := "source,target,mode\nЯндекс,Yandex,exact\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if rules.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", rules.Len())
	}
}
