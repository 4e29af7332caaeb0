package widget

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/totpwidget/core/i18n"
)

// Namespace is the i18n namespace holding the page strings.
const Namespace = "widget"

// Assets holds widget.css and widget.js under the "assets" directory.
//
//go:embed assets
var Assets embed.FS

//go:embed locales/*.yaml
var locales embed.FS

// Translations loads every embedded locale into a new i18n instance with
// defaultLang as the fallback. defaultLang must be one of the embedded locales.
func Translations(defaultLang string, opts ...i18n.Option) (*i18n.I18n, error) {
	files, err := fs.Glob(locales, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}

	all := make([]i18n.Option, 0, len(files)+len(opts)+1)
	found := false
	for _, file := range files {
		lang := strings.TrimSuffix(path.Base(file), ".yaml")
		data, err := locales.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", lang, err)
		}

		var messages map[string]any
		if err := yaml.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", lang, err)
		}

		all = append(all, i18n.WithTranslations(lang, Namespace, messages))
		found = found || lang == defaultLang
	}
	if !found {
		return nil, fmt.Errorf("no locale for default language %q", defaultLang)
	}

	all = append(all, i18n.WithDefaultLanguage(defaultLang))
	all = append(all, opts...)
	return i18n.New(all...)
}
