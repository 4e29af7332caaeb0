// Package widget renders the auto-refreshing code page.
//
// Page returns a templ.Component built from an embedded html/template. The
// initial state (secret, code, window and localized strings) is embedded in
// the page as a JSON script element that assets/widget.js reads on load.
// Assets holds the stylesheet and script; serve it under Props.AssetsPath.
//
// Page strings live in locales/*.yaml, one file per language, and are loaded
// into a core/i18n instance by Translations.
package widget
