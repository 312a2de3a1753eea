// Package dispatch executes requests against a compiled route table.
//
// The pipeline per request: resolve the route (exact match first, then the
// nearest-route fallback that trims trailing segments), run before-hooks
// (action-specific then wildcard), execute the action through the
// controller's execute override or default, run after-hooks, and write the
// response. Any failure after resolution branches into error hooks keyed by
// the error's status code; a hook that completes recovers the request,
// otherwise the error reaches the terminal error handler.
//
//	d := dispatch.New(b.Table(), b.Hooks(),
//		dispatch.WithView(renderer),
//		dispatch.WithAssets(versioner),
//		dispatch.WithLogger(log),
//	)
//	http.ListenAndServe(":8080", d)
//
// Each request gets one Context that lives through the whole pipeline.
// Reroute re-invokes another action on that same Context (no second
// controller state is constructed) and finalizes the body, short-circuiting
// the remaining after-hooks.
//
// Action return values map to the wire as follows: strings and []byte write
// as HTML, response.Response values execute themselves, anything else
// serializes as JSON. Redirects set via Context.Redirect win over the body.
package dispatch
