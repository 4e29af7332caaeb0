// Package i18n provides immutable, concurrency-safe translations with
// namespaced keys, %{placeholder} substitution, default-language fallback
// and language negotiation backed by golang.org/x/text/language.
//
//	tr, err := i18n.New(
//		i18n.WithDefaultLanguage("en"),
//		i18n.WithTranslations("en", "widget", map[string]any{
//			"get":  "Get",
//			"copy": map[string]any{"done": "Copied"},
//		}),
//		i18n.WithTranslations("zh-Hans", "widget", map[string]any{
//			"get": "获取",
//		}),
//	)
//
//	lang := tr.Match(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
//	tr.T(lang, "widget", "copy.done") // falls back to "Copied"
//
// Match accepts single tags ("zh") as well as full Accept-Language values
// ("de;q=0.9, zh-CN;q=0.8") and maps regional variants to the closest
// supported language.
package i18n
