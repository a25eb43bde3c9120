package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/tegorov/flipt/internal/pkg/analytics"
	"github.com/tegorov/flipt/internal/pkg/analyticsclient"
)

// Exit codes for CLI commands
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitConnectionError = 2
	ExitValidationError = 3
	ExitNotFoundError   = 4
)

// ErrorResponse is the JSON shape of a command failure
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ExitCodeFor maps a query error to an exit code
func ExitCodeFor(err error) int {
	var (
		statusErr *analyticsclient.StatusError
		netErr    net.Error
		urlErr    *url.Error
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, analytics.ErrNoNamespace), errors.Is(err, analytics.ErrNoFlag):
		return ExitValidationError
	case errors.Is(err, analyticsclient.ErrNotFound):
		return ExitNotFoundError
	case errors.As(err, &statusErr):
		if statusErr.StatusCode >= http.StatusBadRequest && statusErr.StatusCode < http.StatusInternalServerError {
			return ExitValidationError
		}
		return ExitConnectionError
	case errors.Is(err, context.DeadlineExceeded):
		return ExitConnectionError
	case errors.Is(err, context.Canceled):
		return ExitGeneralError
	case errors.As(err, &netErr), errors.As(err, &urlErr):
		// dial, DNS and TLS failures from the transport
		return ExitConnectionError
	default:
		return ExitGeneralError
	}
}

func codeString(code int) string {
	switch code {
	case ExitSuccess:
		return "OK"
	case ExitConnectionError:
		return "UNAVAILABLE"
	case ExitValidationError:
		return "INVALID_ARGUMENT"
	case ExitNotFoundError:
		return "NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// WriteError writes err as a compact JSON ErrorResponse and returns the exit
// code the process should terminate with.
func WriteError(w io.Writer, err error) int {
	code := ExitCodeFor(err)
	if err == nil {
		return code
	}
	if werr := WriteJSON(w, ErrorResponse{Error: err.Error(), Code: codeString(code)}, false); werr != nil {
		fmt.Fprintln(w, err)
	}
	return code
}
