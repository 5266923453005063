// Package directory provides a typed client for the directory server's
// JSON-RPC webservice. A Client owns one authenticated session: it logs in
// to obtain a session identifier, passes that identifier as the first
// parameter of every subsequent call, and clears it on logout.
//
// The client is synchronous and single-threaded by design: each operation
// issues exactly one RPC and blocks until the transport returns. Callers
// needing concurrency must serialize access or hold one Client per session.
package directory

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dirwise/fdapi/internal/common/httpclient"
	"github.com/dirwise/fdapi/internal/common/jsonrpc"
	"github.com/dirwise/fdapi/pkg/types"
)

// Values is the two-level mapping used by create and update operations:
// tab name → field name → value.
type Values map[string]map[string]any

// Config holds the settings for a Client. NewConfig returns one with the
// defaults a production deployment wants; construct Config directly only
// when the defaults must be overridden.
type Config struct {
	Host              string `validate:"required"` // server address including scheme
	User              string `validate:"required"` // directory user to log in as
	Password          string `validate:"required"`
	Database          string `validate:"required"` // directory database identifier, see ListDatabases
	VerifyCert        bool   // verify the server TLS certificate
	AutoLogin         bool   // log in during New
	EnforceEncryption bool   // reject non-https hosts at construction
	ClientTag         string // sent as the RPC id field with every request
}

// NewConfig returns a Config with verification, auto-login, and encryption
// enforcement all enabled.
func NewConfig(host, user, password, database string) Config {
	return Config{
		Host:              host,
		User:              user,
		Password:          password,
		Database:          database,
		VerifyCert:        true,
		AutoLogin:         true,
		EnforceEncryption: true,
	}
}

var validate = validator.New()

// Client is a session-scoped binding to the directory webservice. The only
// mutable field is the session identifier, written by Login and Logout and
// read by every other operation.
type Client struct {
	config    Config
	transport httpclient.Interface
	sessionID string
}

// New creates a Client from the given configuration. It fails with
// ErrConfiguration before any network activity when the configuration is
// incomplete or when EnforceEncryption is set and the host is not https.
// With AutoLogin the client logs in immediately; otherwise Login must be
// called before any other operation.
func New(cfg Config) (*Client, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, ErrConfiguration.MsgErr("missing required configuration", err)
	}
	if cfg.EnforceEncryption && !strings.HasPrefix(cfg.Host, "https://") {
		return nil, ErrConfiguration.Msg("unencrypted host not allowed: " + cfg.Host)
	}
	if cfg.ClientTag == "" {
		// a per-instance tag keeps parallel clients apart in server logs
		cfg.ClientTag = "go_api_wrapper_" + uuid.NewString()
	}

	c := &Client{config: cfg}
	c.transport = httpclient.NewClient(configurator{&c.config})

	if cfg.AutoLogin {
		if _, err := c.Login(cfg.User, cfg.Password, cfg.Database); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewWithTransport creates a Client over a caller-supplied transport.
// Used by tests; the construction rules are the same as New.
func NewWithTransport(cfg Config, transport httpclient.Interface) (*Client, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, ErrConfiguration.MsgErr("missing required configuration", err)
	}
	if cfg.EnforceEncryption && !strings.HasPrefix(cfg.Host, "https://") {
		return nil, ErrConfiguration.Msg("unencrypted host not allowed: " + cfg.Host)
	}
	if cfg.ClientTag == "" {
		cfg.ClientTag = "go_api_wrapper_" + uuid.NewString()
	}

	c := &Client{config: cfg, transport: transport}
	if cfg.AutoLogin {
		if _, err := c.Login(cfg.User, cfg.Password, cfg.Database); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// configurator adapts Config to httpclient.Configurator without exporting
// a VerifyCert() method that would collide with the field name.
type configurator struct {
	cfg *Config
}

func (c configurator) GetServerURL() string { return c.cfg.Host }
func (c configurator) GetClientTag() string { return c.cfg.ClientTag }
func (c configurator) VerifyCert() bool     { return c.cfg.VerifyCert }

// call issues one RPC and applies the shared failure policy: a transport
// error surfaces as ErrTransport, a non-null error payload as ErrDirectory,
// and a result object embedding a non-empty errors list as ErrDirectory.
func (c *Client) call(method jsonrpc.MethodType, params ...any) (types.NullableAny, error) {
	body, err := jsonrpc.ConstructRequest(c.config.ClientTag, method, params...)
	if err != nil {
		return types.NilAny(), ErrValidation.MsgErr("failed to encode request", err)
	}

	log.Debug().Str("method", string(method)).Msg("directory rpc call")

	respBody, err := c.transport.Post(body)
	if err != nil {
		return types.NilAny(), ErrTransport.Err(err)
	}

	resp, err := jsonrpc.ParseResponse(respBody)
	if err != nil {
		return types.NilAny(), ErrTransport.MsgErr("malformed response from server", err)
	}

	if !resp.Error.IsNil() {
		return types.NilAny(), ErrDirectory.Err(&ServerPayloadError{Payload: resp.Error.Get()})
	}
	if errs := resp.EmbeddedErrors(); len(errs) > 0 {
		return types.NilAny(), ErrDirectory.Err(&ServerPayloadError{Payload: errs})
	}
	return resp.Result, nil
}

// Login authenticates against the given database and stores the returned
// session identifier. Fails with ErrAuthentication when the server rejects
// the credentials; transport failures stay ErrTransport.
func (c *Client) Login(user, password, database string) (string, error) {
	result, err := c.call(jsonrpc.MethodLogin, database, user, password)
	if err != nil {
		if errors.Is(err, ErrDirectory) {
			return "", ErrAuthentication.MsgErr("login rejected by server", err)
		}
		return "", err
	}

	var sid string
	if err := result.GetAs(&sid); err != nil || sid == "" {
		return "", ErrAuthentication.Msg("server returned no session identifier")
	}
	c.sessionID = sid
	return sid, nil
}

// Logout ends the session on the server and returns the server's result.
// The local session identifier is cleared even when the server reports an
// error, so the client never claims an identifier the server has already
// invalidated.
func (c *Client) Logout() (any, error) {
	result, err := c.call(jsonrpc.MethodLogout, c.sessionID)
	c.sessionID = ""
	if err != nil {
		return nil, err
	}
	return result.Get(), nil
}

// SessionID validates session liveness against the server and returns the
// identifier. When no session is active it returns "" without contacting
// the server.
func (c *Client) SessionID() (string, error) {
	if c.sessionID == "" {
		return "", nil
	}
	result, err := c.call(jsonrpc.MethodGetID, c.sessionID)
	if err != nil {
		return "", err
	}
	var sid string
	if err := result.GetAs(&sid); err != nil {
		return "", ErrDirectory.MsgErr("unexpected getId result", err)
	}
	return sid, nil
}

// Base returns the configured directory root for the active session.
func (c *Client) Base() (string, error) {
	result, err := c.call(jsonrpc.MethodGetBase, c.sessionID)
	if err != nil {
		return "", err
	}
	var base string
	if err := result.GetAs(&base); err != nil {
		return "", ErrDirectory.MsgErr("unexpected getBase result", err)
	}
	return base, nil
}

// ListDatabases lists the directory databases the server manages, keyed by
// the identifier Login accepts, with displayable names as values. This is
// the only operation besides Login that carries no session identifier.
func (c *Client) ListDatabases() (map[string]string, error) {
	result, err := c.call(jsonrpc.MethodListDatabases)
	if err != nil {
		return nil, err
	}
	dbs := map[string]string{}
	if result.IsNil() {
		return dbs, nil
	}
	if err := result.GetAs(&dbs); err != nil {
		return nil, ErrDirectory.MsgErr("unexpected listLdaps result", err)
	}
	return dbs, nil
}

// optional turns "" into a JSON null parameter.
func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}
