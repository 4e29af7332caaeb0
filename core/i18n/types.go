package i18n

// M is a map of placeholder values.
type M map[string]any
