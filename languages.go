package sitetrans

import "strings"

// LanguageNames maps locale codes to English names, used when a provider
// needs a human-readable language description in its request.
var LanguageNames = map[string]string{
	"ar_SA": "Arabic (Saudi Arabia)",
	"bg_BG": "Bulgarian (Bulgaria)",
	"cs_CZ": "Czech (Czech Republic)",
	"da_DK": "Danish (Denmark)",
	"de_DE": "German (Germany)",
	"el_GR": "Greek (Greece)",
	"en_GB": "English (United Kingdom)",
	"en_US": "English (United States)",
	"es_ES": "Spanish (Spain)",
	"fa_IR": "Persian (Iran)",
	"fi_FI": "Finnish (Finland)",
	"fr_FR": "French (France)",
	"he_IL": "Hebrew (Israel)",
	"hi_IN": "Hindi (India)",
	"hu_HU": "Hungarian (Hungary)",
	"id_ID": "Indonesian (Indonesia)",
	"it_IT": "Italian (Italy)",
	"ja_JP": "Japanese (Japan)",
	"kk_KZ": "Kazakh (Kazakhstan)",
	"ko_KR": "Korean (South Korea)",
	"nl_NL": "Dutch (Netherlands)",
	"pl_PL": "Polish (Poland)",
	"pt_BR": "Portuguese (Brazil)",
	"pt_PT": "Portuguese (Portugal)",
	"ro_RO": "Romanian (Romania)",
	"ru_RU": "Russian (Russia)",
	"sv_SE": "Swedish (Sweden)",
	"th_TH": "Thai (Thailand)",
	"tr_TR": "Turkish (Turkey)",
	"uk_UA": "Ukrainian (Ukraine)",
	"uz_UZ": "Uzbek (Uzbekistan)",
	"vi_VN": "Vietnamese (Vietnam)",
	"zh_CN": "Chinese (Simplified)",
	"zh_TW": "Chinese (Traditional)",
}

// ShortCodeToLocale expands bare language codes to a canonical locale, so
// configs may say "ru" instead of "ru_RU".
var ShortCodeToLocale = map[string]string{
	"ar": "ar_SA",
	"cs": "cs_CZ",
	"de": "de_DE",
	"en": "en_US",
	"es": "es_ES",
	"fa": "fa_IR",
	"fr": "fr_FR",
	"he": "he_IL",
	"hi": "hi_IN",
	"it": "it_IT",
	"ja": "ja_JP",
	"kk": "kk_KZ",
	"ko": "ko_KR",
	"nl": "nl_NL",
	"pl": "pl_PL",
	"pt": "pt_BR",
	"ru": "ru_RU",
	"tr": "tr_TR",
	"uk": "uk_UA",
	"uz": "uz_UZ",
	"vi": "vi_VN",
	"zh": "zh_CN",
}

// NativeNames maps base language codes to each language's own name, used to
// label the in-page language-switch control.
var NativeNames = map[string]string{
	"ar": "العربية",
	"bg": "Български",
	"cs": "Čeština",
	"da": "Dansk",
	"de": "Deutsch",
	"el": "Ελληνικά",
	"en": "English",
	"es": "Español",
	"fa": "فارسی",
	"fi": "Suomi",
	"fr": "Français",
	"he": "עברית",
	"hi": "हिन्दी",
	"hu": "Magyar",
	"id": "Bahasa Indonesia",
	"it": "Italiano",
	"ja": "日本語",
	"kk": "Қазақша",
	"ko": "한국어",
	"nl": "Nederlands",
	"pl": "Polski",
	"pt": "Português",
	"ro": "Română",
	"ru": "Русский",
	"sv": "Svenska",
	"th": "ไทย",
	"tr": "Türkçe",
	"uk": "Українська",
	"uz": "Oʻzbekcha",
	"vi": "Tiếng Việt",
	"zh": "中文",
}

// GetLanguageName returns the English name for a language code, accepting
// both full locales and short codes. Unknown codes come back unchanged.
func GetLanguageName(langCode string) string {
	if name := LanguageNames[langCode]; name != "" {
		return name
	}
	if name := LanguageNames[ShortCodeToLocale[langCode]]; name != "" {
		return name
	}
	return langCode
}

// NativeName returns a language's own name for switch-control labels.
// Falls back to the English name, then to the code itself.
func NativeName(langCode string) string {
	if name, ok := NativeNames[BaseLang(langCode)]; ok {
		return name
	}
	return GetLanguageName(langCode)
}

// BaseLang extracts the lowercase base language code (e.g., "ru" from
// "ru_RU" or "ru-RU").
func BaseLang(langCode string) string {
	base := strings.FieldsFunc(langCode, func(r rune) bool {
		return r == '_' || r == '-'
	})
	if len(base) == 0 {
		return strings.ToLower(langCode)
	}
	return strings.ToLower(base[0])
}

// GetDirection returns the text direction for a language: "rtl" for
// right-to-left scripts, "ltr" for everything else.
func GetDirection(langCode string) string {
	if RTLLanguages[BaseLang(langCode)] {
		return "rtl"
	}
	return "ltr"
}

// IsRTL reports whether the language is written right to left.
func IsRTL(langCode string) bool {
	return GetDirection(langCode) == "rtl"
}

// NormalizeLocale rewrites a BCP 47 style tag to underscore form
// ("es-ES" → "es_ES"), the form used for locale directory names.
func NormalizeLocale(langCode string) string {
	return strings.ReplaceAll(langCode, "-", "_")
}

// ToHTMLLang rewrites a locale code to hyphen form for lang and hreflang
// attributes ("es_ES" → "es-ES").
func ToHTMLLang(langCode string) string {
	return strings.ReplaceAll(langCode, "_", "-")
}
