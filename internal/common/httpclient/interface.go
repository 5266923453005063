package httpclient

// Interface defines the transport contract the directory client depends on.
// Tests substitute their own implementation to exercise the client without
// a network.
type Interface interface {
	// Post sends a serialized RPC envelope and returns the raw response body.
	Post(body []byte) ([]byte, error)
}

// Verify that HTTPClient implements the Interface.
var _ Interface = &HTTPClient{}
