package static

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dmitrymomot/totpwidget/core/handler"
	"github.com/dmitrymomot/totpwidget/core/response"
)

// DefaultMaxAge is how long browsers may cache served files.
const DefaultMaxAge = time.Hour

type fsConfig struct {
	fs          fs.FS
	stripPrefix string
	subPath     string
	maxAge      time.Duration
}

// Option configures FS.
type Option func(*fsConfig)

// WithStripPrefix removes the given prefix from the URL path before the file is looked up.
//
// With WithStripPrefix("/-/assets"), "/-/assets/widget.css" serves "widget.css".
func WithStripPrefix(prefix string) Option {
	return func(c *fsConfig) {
		c.stripPrefix = prefix
	}
}

// WithSubFS serves files from a subdirectory of the filesystem.
// The path uses forward slashes regardless of OS.
func WithSubFS(dir string) Option {
	return func(c *fsConfig) {
		c.subPath = dir
	}
}

// WithMaxAge sets the Cache-Control max-age. Zero or negative disables caching.
func WithMaxAge(d time.Duration) Option {
	return func(c *fsConfig) {
		c.maxAge = d
	}
}

// FS creates a handler that serves regular files from an fs.FS, typically an embed.FS.
// Directories are never listed. Missing files and directories are reported
// as response.ErrNotFound, so the router's error handler renders them.
//
// Panics at startup if the sub-path is invalid or the filesystem root cannot be opened.
//
//	//go:embed assets
//	var assets embed.FS
//
//	r.Get("/-/assets/{file}", static.FS[*router.Context](assets,
//		static.WithSubFS("assets"),
//		static.WithStripPrefix("/-/assets"),
//	))
func FS[C handler.Context](fsys fs.FS, opts ...Option) handler.HandlerFunc[C] {
	cfg := &fsConfig{
		fs:     fsys,
		maxAge: DefaultMaxAge,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.subPath != "" {
		sub, err := fs.Sub(fsys, cfg.subPath)
		if err != nil {
			panic("static.FS: invalid sub-path '" + cfg.subPath + "': " + err.Error())
		}
		cfg.fs = sub
	}

	if _, err := fs.Stat(cfg.fs, "."); err != nil {
		panic("static.FS: filesystem is not accessible: " + err.Error())
	}

	return func(ctx C) handler.Response {
		name, ok := cfg.resolve(ctx.Request().URL.Path)
		if !ok {
			return response.Error(response.ErrNotFound)
		}

		return response.WithCache(func(w http.ResponseWriter, r *http.Request) error {
			http.ServeFileFS(w, r, cfg.fs, name)
			return nil
		}, cfg.maxAge)
	}
}

// resolve maps a URL path to a regular file inside the filesystem.
func (c *fsConfig) resolve(urlPath string) (string, bool) {
	if c.stripPrefix != "" {
		trimmed, found := strings.CutPrefix(urlPath, c.stripPrefix)
		if !found {
			return "", false
		}
		urlPath = trimmed
	}

	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" || !fs.ValidPath(name) {
		return "", false
	}

	info, err := fs.Stat(c.fs, name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return name, true
}
