package i18n

import (
	"fmt"
	"maps"
	"strings"

	"golang.org/x/text/language"
)

// Accept-Language values longer than this are truncated before parsing.
const maxAcceptLanguageLength = 4096

// Match returns the supported language closest to the first usable
// preference, or the default. A preference is a BCP 47 tag ("zh-CN") or a
// whole Accept-Language value ("fr;q=0.9, zh-CN;q=0.8").
func (i *I18n) Match(preferences ...string) string {
	for _, pref := range preferences {
		pref = strings.TrimSpace(pref)
		if len(pref) > maxAcceptLanguageLength {
			pref = pref[:maxAcceptLanguageLength]
		}
		if pref == "" {
			continue
		}

		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}
		if _, idx, conf := i.matcher.Match(tags...); conf != language.No && idx < len(i.languages) {
			return i.languages[idx]
		}
	}
	return i.defaultLang
}

// ReplacePlaceholders substitutes each %{name} in template with the value of
// name in placeholders. Unknown placeholders are left as they are.
func ReplacePlaceholders(template string, placeholders M) string {
	if len(placeholders) == 0 || !strings.Contains(template, "%{") {
		return template
	}
	pairs := make([]string, 0, 2*len(placeholders))
	for k, v := range placeholders {
		pairs = append(pairs, "%{"+k+"}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func replacePlaceholdersWithMerge(template string, placeholders ...M) string {
	switch len(placeholders) {
	case 0:
		return template
	case 1:
		return ReplacePlaceholders(template, placeholders[0])
	}
	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}
	return ReplacePlaceholders(template, merged)
}
