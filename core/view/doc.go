// Package view is the template-rendering collaborator consumed by the
// dispatch engine. The Renderer interface is the whole contract: resolve a
// template name against a controller scope, render it with locals, and
// report misses as TemplateNotFoundError.
//
// HTML is the html/template implementation. Templates live under a root
// directory and resolve controller-scoped first:
//
//	templates/
//	  layout.html        {{template "content" .}} wraps pages
//	  users/show.html    {{define "content"}}...{{end}}
//	  about.html         shared, no controller scope
//
// Layout wrapping and compiled-template caching are opt-in per call via
// Options and default from the renderer configuration; production apps
// enable the cache, development recompiles on every render.
//
// Component adapts a-h/templ components to the same string-body pipeline.
package view
