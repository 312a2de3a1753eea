package response

import (
	"encoding/json"
	"net/http"
)

// Response is a function that renders an HTTP response: it sets headers and
// status and writes the body. Rendering errors propagate to the dispatcher's
// error handling.
type Response func(w http.ResponseWriter, r *http.Request) error

// String creates a text/plain response.
func String(content string, status int) Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(normalizeStatus(status))
		if content == "" {
			return nil
		}
		_, err := w.Write([]byte(content))
		return err
	}
}

// HTML creates a text/html response.
func HTML(content string, status int) Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(normalizeStatus(status))
		if content == "" {
			return nil
		}
		_, err := w.Write([]byte(content))
		return err
	}
}

// Bytes creates a response writing raw bytes with the given content type.
func Bytes(content []byte, contentType string, status int) Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(normalizeStatus(status))
		if len(content) == 0 {
			return nil
		}
		_, err := w.Write(content)
		return err
	}
}

// JSON creates an application/json response from any serializable value.
func JSON(v any, status int) Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(normalizeStatus(status))
		return json.NewEncoder(w).Encode(v)
	}
}

// Redirect creates a response with a Location header. Statuses outside the
// 3xx range fall back to 302 Found.
func Redirect(url string, status int) Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if status < 300 || status >= 400 {
			status = http.StatusFound
		}
		http.Redirect(w, r, url, status)
		return nil
	}
}

// Error returns a response that propagates the given error to the
// dispatcher's error handling instead of writing anything.
func Error(err error) Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}

func normalizeStatus(status int) int {
	if status == 0 {
		return http.StatusOK
	}
	return status
}
