// Package i18n holds the English and Spanish label catalogs and locale negotiation.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a supported UI language.
type Locale string

// Supported locales.
const (
	English Locale = "en"
	Spanish Locale = "es"
)

var (
	supported = []Locale{English, Spanish}
	matcher   = language.NewMatcher([]language.Tag{language.English, language.Spanish})
)

// Negotiate picks a locale from an explicit choice (tag or language name)
// and an Accept-Language header, in that order. Defaults to English.
func Negotiate(choice, acceptLanguage string) Locale {
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "english":
		return English
	case "español", "espanol", "spanish":
		return Spanish
	}
	if choice == "" && acceptLanguage == "" {
		return English
	}
	_, idx := language.MatchStrings(matcher, choice, acceptLanguage)
	return supported[idx]
}

// Text returns the UI string for key, or key itself when untranslated.
func Text(l Locale, key string) string {
	return lookup(ui, l, key, key)
}

// Attribute returns the display label of a dataset column.
func Attribute(l Locale, column string) string {
	return lookup(attributes, l, column, Humanize(column))
}

// Value translates a raw cell. Comma-separated lists are translated item by item;
// blank and "null" cells render as "-".
func Value(l Locale, raw string) string {
	if raw == "" || raw == "null" {
		return "-"
	}
	if l == English {
		return raw
	}
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		parts[i] = lookup(values, l, p, p)
	}
	return strings.Join(parts, ", ")
}

// Trait returns the shared-trait label and icon of a column.
func Trait(l Locale, column string) (label, icon string) {
	icon, ok := traitIcons[column]
	if !ok {
		icon = "🔹"
	}
	return lookup(traits, l, column, Humanize(column)), icon
}

// Humanize turns snake_case into a capitalized phrase: "work_shift" -> "Work shift".
func Humanize(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func lookup(catalog map[Locale]map[string]string, l Locale, key, fallback string) string {
	if v, ok := catalog[l][key]; ok {
		return v
	}
	if v, ok := catalog[English][key]; ok && l != English {
		return v
	}
	return fallback
}
