package directory

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/dirwise/fdapi/internal/common/apperrors"
)

// Base client error
var (
	ErrClient apperrors.Error = apperrors.New("directory client error").SetStatusCode(http.StatusInternalServerError)
)

// Failure taxonomy. Every operation fails with exactly one of these; callers
// match with errors.Is.
var (
	// ErrConfiguration marks invalid construction, such as a plaintext
	// endpoint while encryption is enforced.
	ErrConfiguration apperrors.Error = ErrClient.New("invalid client configuration").SetStatusCode(http.StatusBadRequest)

	// ErrTransport marks network or HTTP-layer failures, including non-2xx
	// statuses from the endpoint.
	ErrTransport apperrors.Error = ErrClient.New("transport failure").SetStatusCode(http.StatusBadGateway)

	// ErrAuthentication marks a rejected login.
	ErrAuthentication apperrors.Error = ErrClient.New("authentication failed").SetStatusCode(http.StatusUnauthorized)

	// ErrDirectory marks a server-reported RPC error, an errors list embedded
	// in a result payload, or a delete that unexpectedly returned content.
	ErrDirectory apperrors.Error = ErrClient.New("directory operation failed").SetExpandError(true).SetStatusCode(http.StatusBadGateway)

	// ErrValidation marks a malformed caller argument.
	ErrValidation apperrors.Error = ErrClient.New("invalid argument").SetStatusCode(http.StatusBadRequest)
)

// ServerPayloadError carries the raw payload the server attached to a
// failure, preserved for diagnostics. It is always wrapped under one of the
// sentinel errors above.
type ServerPayloadError struct {
	Payload any
}

// Error renders the payload as JSON where possible.
func (e *ServerPayloadError) Error() string {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(e.Payload)
	if err != nil {
		return fmt.Sprintf("server payload: %v", e.Payload)
	}
	return "server payload: " + string(data)
}
