package i18n

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"golang.org/x/text/language"
)

// DefaultLang is the fallback language when WithDefaultLanguage is not used.
const DefaultLang = "en"

var (
	ErrEmptyLanguage  = errors.New("i18n: language cannot be empty")
	ErrEmptyNamespace = errors.New("i18n: namespace cannot be empty")
)

// table holds the flattened messages of one namespace in one language.
type table map[string]string

// I18n is a read-only message catalog. It is safe for concurrent use once
// New returns.
type I18n struct {
	catalog     map[string]map[string]table // lang -> namespace -> key -> message
	defaultLang string
	languages   []string // default first, then sorted
	matcher     language.Matcher
	onMissing   func(lang, namespace, key string)

	extra map[string]struct{} // languages declared without messages
}

// Option configures New.
type Option func(*I18n) error

// New builds the catalog. Every language with messages is supported, plus
// those passed to WithLanguages, plus the default.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		catalog:     make(map[string]map[string]table),
		defaultLang: DefaultLang,
		extra:       make(map[string]struct{}),
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	if i.defaultLang == "" {
		return nil, ErrEmptyLanguage
	}

	others := make([]string, 0, len(i.catalog)+len(i.extra))
	for lang := range i.catalog {
		others = append(others, lang)
	}
	for lang := range i.extra {
		others = append(others, lang)
	}
	slices.Sort(others)
	others = slices.Compact(others)
	others = slices.DeleteFunc(others, func(l string) bool { return l == i.defaultLang })
	i.languages = append([]string{i.defaultLang}, others...)

	tags := make([]language.Tag, len(i.languages))
	for n, lang := range i.languages {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("i18n: language %q: %w", lang, err)
		}
		tags[n] = tag
	}
	i.matcher = language.NewMatcher(tags)
	i.extra = nil

	return i, nil
}

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithLanguages declares supported languages that may have no messages.
func WithLanguages(langs ...string) Option {
	return func(i *I18n) error {
		for _, lang := range langs {
			if lang != "" {
				i.extra[lang] = struct{}{}
			}
		}
		return nil
	}
}

// WithMissingKeyHandler registers fn, called when a key is found neither in
// the requested language nor in the default one.
func WithMissingKeyHandler(fn func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.onMissing = fn
		return nil
	}
}

// WithTranslations adds messages for lang in namespace. Nested maps are
// flattened into dot-separated keys, so {"tip": {"url": "..."}} becomes
// "tip.url". Later calls for the same language and namespace merge.
func WithTranslations(lang, namespace string, messages map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		byNS, ok := i.catalog[lang]
		if !ok {
			byNS = make(map[string]table)
			i.catalog[lang] = byNS
		}
		t, ok := byNS[namespace]
		if !ok {
			t = make(table)
			byNS[namespace] = t
		}
		flatten(t, "", messages)
		return nil
	}
}

func flatten(dst table, prefix string, src map[string]any) {
	for k, v := range src {
		if prefix != "" {
			k = prefix + "." + k
		}
		switch v := v.(type) {
		case string:
			dst[k] = v
		case map[string]any:
			flatten(dst, k, v)
		case map[string]string:
			for sub, s := range v {
				dst[k+"."+sub] = s
			}
		default:
			dst[k] = fmt.Sprint(v)
		}
	}
}

func (i *I18n) lookup(lang, namespace, key string) (string, bool) {
	msg, ok := i.catalog[lang][namespace][key]
	return msg, ok
}

// T returns the message for key with placeholders filled in. It falls back
// to the default language and finally to the key itself.
func (i *I18n) T(lang, namespace, key string, placeholders ...M) string {
	msg, ok := i.lookup(lang, namespace, key)
	if !ok {
		msg, ok = i.lookup(i.defaultLang, namespace, key)
	}
	if !ok {
		if i.onMissing != nil {
			i.onMissing(lang, namespace, key)
		}
		return key
	}
	return replacePlaceholdersWithMerge(msg, placeholders...)
}

// Messages returns a copy of every message in namespace for lang, with the
// default language filling keys lang lacks.
func (i *I18n) Messages(lang, namespace string) map[string]string {
	out := maps.Clone(map[string]string(i.catalog[i.defaultLang][namespace]))
	if out == nil {
		out = make(map[string]string)
	}
	if lang != i.defaultLang {
		maps.Copy(out, i.catalog[lang][namespace])
	}
	return out
}

// Languages lists the supported languages, default first.
func (i *I18n) Languages() []string { return slices.Clone(i.languages) }

// DefaultLanguage returns the fallback language.
func (i *I18n) DefaultLanguage() string { return i.defaultLang }
