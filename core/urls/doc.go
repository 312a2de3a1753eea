// Package urls is the reverse side of routing: it synthesizes canonical
// paths and absolute URLs from a (controller, action, args) reference or a
// raw path, querying the same route table the dispatcher matches against.
//
//	b := urls.New(table,
//		urls.WithRequest("http", "localhost:3000"),
//		urls.WithController(current),
//	)
//
//	b.PathTo(nil, "show", map[string]any{"id": 42})   // "/users/42"
//	b.URLTo("/path?x=1")                              // "http://localhost:3000/path?x=1"
//	b.URLTo("/css/app.css", urls.WithVersion())       // appends ?v=<mtime>
//	b.PathToBack()                                    // referer, parent, or "/"
//
// Ports matching the scheme's conventional default (80 for http, 443 for
// https) are elided from generated URLs. Argument maps passed in are cloned,
// never mutated; leftovers after placeholder substitution become a sorted
// query string.
package urls
