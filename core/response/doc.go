// Package response defines the framework's response contract and the body
// emitters the dispatcher renders final action results with.
//
// A Response is a function that writes itself to the wire:
//
//	type Response func(w http.ResponseWriter, r *http.Request) error
//
// Actions usually return plain values (strings, structs) and let the
// dispatcher pick an emitter, but an action may also return a Response
// directly for full control:
//
//	func download(ctx controller.Ctx) (any, error) {
//		return response.Bytes(payload, "application/pdf", http.StatusOK), nil
//	}
//
// HTTPError carries an HTTP status through the error path; the dispatcher
// keys error hooks by its StatusCode.
package response
