package service

import (
	"golang.org/x/text/language"

	"bizdir.app/directory/internal/model"
)

var langMatcher = language.NewMatcher([]language.Tag{language.English, language.French})

// ResolveLanguage picks "en" or "fr". An explicit lang wins over the
// Accept-Language header; English is the default.
func ResolveLanguage(lang, acceptLanguage string) string {
	if lang == model.LangEN || lang == model.LangFR {
		return lang
	}

	candidates := []string{lang, acceptLanguage}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(c)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, conf := langMatcher.Match(tags...)
		if conf == language.No {
			continue
		}
		if idx == 1 {
			return model.LangFR
		}
		return model.LangEN
	}
	return model.LangEN
}
