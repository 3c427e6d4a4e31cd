package models

// Language is a speech-output target language.
type Language string

const (
	LanguageKorean     Language = "ko"
	LanguageChinese    Language = "zh"
	LanguageVietnamese Language = "vi"
	LanguageEnglish    Language = "en"
	LanguageThai       Language = "th"
	LanguageJapanese   Language = "ja"
)

// NoTranslationLanguage is the language documents are authored in.
// Items targeting it skip the translation backend and copy text through.
const NoTranslationLanguage = LanguageKorean

var allLanguages = []Language{
	LanguageKorean,
	LanguageChinese,
	LanguageVietnamese,
	LanguageEnglish,
	LanguageThai,
	LanguageJapanese,
}

var languageNames = map[Language]string{
	LanguageKorean:     "한국어",
	LanguageChinese:    "中文",
	LanguageVietnamese: "Tiếng Việt",
	LanguageEnglish:    "English",
	LanguageThai:       "ไทย",
	LanguageJapanese:   "日本語",
}

// AllLanguages returns the supported target languages in display order.
func AllLanguages() []Language {
	cp := make([]Language, len(allLanguages))
	copy(cp, allLanguages)
	return cp
}

// ParseLanguage converts a string into a known Language.
func ParseLanguage(value string) (Language, bool) {
	lang := Language(value)
	if _, ok := languageNames[lang]; ok {
		return lang, true
	}
	return "", false
}

// DisplayName returns the native display name of the language.
func (l Language) DisplayName() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return string(l)
}
