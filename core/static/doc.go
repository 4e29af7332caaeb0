// Package static serves files from an fs.FS, usually an embed.FS compiled
// into the binary.
//
//	//go:embed assets
//	var assets embed.FS
//
//	r.Get("/-/assets/{file}", static.FS[*router.Context](assets,
//		static.WithSubFS("assets"),
//		static.WithStripPrefix("/-/assets"),
//		static.WithMaxAge(24*time.Hour),
//	))
//
// Only regular files are served. Directory paths, missing files and paths
// escaping the root all produce response.ErrNotFound. Responses carry
// Cache-Control from WithMaxAge (one hour by default); a non-positive max age
// marks them as not cacheable.
package static
