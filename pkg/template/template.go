package template

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cropfresh/cropfresh-service-notification/internal/domain"
)

// The catalog is a flat per-(key, language) string table. The message set is
// small and translator-owned, so a direct lookup is easier to audit than a
// runtime i18n engine.

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Render picks templates[key][lang], falling back to English when the
// language variant is missing and to a generic string when the key has no
// template family at all. Every {{name}} is replaced with the string form
// of vars[name]; absent variables are elided to "".
func Render(key string, lang domain.Language, vars map[string]interface{}) string {
	family, ok := catalog[key]
	if !ok {
		return fmt.Sprintf("You have a new update from CropFresh (%s)", key)
	}

	tmpl, ok := family[lang]
	if !ok {
		tmpl = family[domain.English]
	}

	return substitute(tmpl, vars)
}

func substitute(tmpl string, vars map[string]interface{}) string {
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := placeholderRe.FindStringSubmatch(m)[1]
		v, ok := vars[name]
		if !ok || v == nil {
			return ""
		}
		return fmt.Sprintf("%v", v)
	})
}

// ParseLanguage maps a raw language code to a supported language. Pure and
// total: anything unrecognized is English.
func ParseLanguage(code string) domain.Language {
	code = strings.ToLower(code)
	if len(code) > 2 {
		code = code[:2]
	}
	switch code {
	case "kn", "ka":
		return domain.Kannada
	case "hi":
		return domain.Hindi
	case "ta":
		return domain.Tamil
	case "te":
		return domain.Telugu
	default:
		return domain.English
	}
}

// Channel-suffixed keys for one notification type.

func SMSKey(t domain.NotificationType) string       { return string(t) + ".sms" }
func PushTitleKey(t domain.NotificationType) string { return string(t) + ".push_title" }
func PushBodyKey(t domain.NotificationType) string  { return string(t) + ".push_body" }

// Keys lists every template key in the catalog, for completeness checks.
func Keys() []string {
	keys := make([]string, 0, len(catalog))
	for k := range catalog {
		keys = append(keys, k)
	}
	return keys
}

// LanguagesFor lists the language variants defined for a key.
func LanguagesFor(key string) []domain.Language {
	family := catalog[key]
	langs := make([]domain.Language, 0, len(family))
	for l := range family {
		langs = append(langs, l)
	}
	return langs
}
