// Package static is the framework's narrow contract with the static file
// system: it answers "when was this asset last modified" for cache-busting
// asset URLs and nothing more. Serving the files themselves belongs to the
// transport collaborator.
//
// Versioner implements the environment-dependent caching policy: production
// processes stamp each asset once and cache the result for the process
// lifetime, while development re-reads the filesystem timestamp on every
// call so live edits are picked up immediately.
//
//	v := static.NewVersioner(cfg.StaticDir, cfg.IsProduction())
//	stamp, err := v.Version("css/app.css") // → 1712345678
//
// All lookups are confined to the static root; traversal outside it returns
// ErrOutsideRoot.
package static
