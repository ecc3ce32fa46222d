package sitetrans

import "testing"

func TestGetLanguageName(t *testing.T) {
	cases := map[string]string{
		"ru_RU":   "Russian (Russia)",
		"uz_UZ":   "Uzbek (Uzbekistan)",
		"ja_JP":   "Japanese (Japan)",
		"en":      "English (United States)", // expanded through ShortCodeToLocale
		"unknown": "unknown",
	}
	for code, want := range cases {
		if got := GetLanguageName(code); got != want {
			t.Errorf("GetLanguageName(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestShortCodesResolve(t *testing.T) {
	for short, locale := range ShortCodeToLocale {
		if _, ok := LanguageNames[locale]; !ok {
			t.Errorf("short code %q expands to %q, which has no English name", short, locale)
		}
	}
}

func TestBaseLang(t *testing.T) {
	cases := map[string]string{
		"ru":    "ru",
		"ru_RU": "ru",
		"ru-RU": "ru",
		"UZ_uz": "uz",
		"":      "",
	}
	for code, want := range cases {
		if got := BaseLang(code); got != want {
			t.Errorf("BaseLang(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestNativeName(t *testing.T) {
	cases := map[string]string{
		"ru":    "Русский",
		"ru_RU": "Русский",
		"uz":    "Oʻzbekcha",
		"uz_UZ": "Oʻzbekcha",
		"tlh":   "tlh", // no native name known, the code comes back
	}
	for code, want := range cases {
		if got := NativeName(code); got != want {
			t.Errorf("NativeName(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestDirection(t *testing.T) {
	for _, code := range []string{"ar_SA", "he_IL", "fa_IR", "ur_PK", "ar"} {
		if GetDirection(code) != "rtl" || !IsRTL(code) {
			t.Errorf("%s should be right-to-left", code)
		}
	}
	for _, code := range []string{"ru_RU", "uz_UZ", "en_US", "zh_CN"} {
		if GetDirection(code) != "ltr" || IsRTL(code) {
			t.Errorf("%s should be left-to-right", code)
		}
	}
}

func TestLocaleForms(t *testing.T) {
	if got := NormalizeLocale("es-ES"); got != "es_ES" {
		t.Errorf("NormalizeLocale(es-ES) = %q", got)
	}
	if got := NormalizeLocale("es_ES"); got != "es_ES" {
		t.Errorf("NormalizeLocale should leave underscore form alone, got %q", got)
	}
	if got := ToHTMLLang("es_ES"); got != "es-ES" {
		t.Errorf("ToHTMLLang(es_ES) = %q", got)
	}
	if got := ToHTMLLang("en-US"); got != "en-US" {
		t.Errorf("ToHTMLLang should leave hyphen form alone, got %q", got)
	}
}
