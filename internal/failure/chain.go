// Package failure turns raw failed-expectation records into the
// human-readable messages the host result schema expects.
package failure

import "sra/internal/domain"

// CircularMarker replaces a cause that points back at an error already
// formatted earlier in the same chain.
const CircularMarker = "[circular reference]"

// HasCauseChain reports whether err carries a cause chain the formatter
// can follow: the value must be error-like and its cause must be a
// string or another error-like value. A cause of any other type is not
// a supported chain and the error is treated as plain.
func HasCauseChain(err *domain.ErrorLike) bool {
	if err == nil || err.Cause == nil {
		return false
	}
	switch err.Cause.(type) {
	case string, *domain.ErrorLike:
		return true
	}
	return false
}

// FormatChain renders err and, recursively, its cause chain. The base
// text is the stack trace when present, else the message. visited holds
// errors already formatted (by identity); revisiting one substitutes
// CircularMarker instead of recursing, so formatting terminates on any
// finite-or-cyclic chain.
func FormatChain(err *domain.ErrorLike, visited map[*domain.ErrorLike]struct{}) string {
	base := err.Stack
	if base == "" {
		base = err.Message
	}
	if !HasCauseChain(err) {
		return base
	}

	switch cause := err.Cause.(type) {
	case string:
		return base + "\n\n[cause]: " + cause
	case *domain.ErrorLike:
		if _, seen := visited[cause]; seen {
			return base + "\n\n[cause]: " + CircularMarker
		}
		visited[err] = struct{}{}
		return base + "\n\n[cause]: " + FormatChain(cause, visited)
	}
	return base
}
