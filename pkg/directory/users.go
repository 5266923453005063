package directory

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dirwise/fdapi/internal/common/jsonrpc"
)

// lockUser modes
const (
	lockMode   = "lock"
	unlockMode = "unlock"
)

// LockUser locks a user account. The server's own result payload carries no
// information, so success is simply the absence of an error. Locking an
// already locked user is not an error.
func (c *Client) LockUser(dn string) error {
	if err := validateSingleDN(dn); err != nil {
		return err
	}
	_, err := c.call(jsonrpc.MethodLockUser, c.sessionID, dn, lockMode)
	return err
}

// UnlockUser unlocks a user account. Same semantics as LockUser.
func (c *Client) UnlockUser(dn string) error {
	if err := validateSingleDN(dn); err != nil {
		return err
	}
	_, err := c.call(jsonrpc.MethodLockUser, c.sessionID, dn, unlockMode)
	return err
}

// UserIsLocked reports whether the user account is locked. The server
// accepts a list of DNs on the wire, but this client only forwards a single
// DN: dn must be one well-formed DN string, anything else fails with
// ErrValidation. The server answers a one-entry mapping keyed by DN with
// 0 or 1.
func (c *Client) UserIsLocked(dn string) (bool, error) {
	if err := validateSingleDN(dn); err != nil {
		return false, err
	}

	result, err := c.call(jsonrpc.MethodIsUserLocked, c.sessionID, dn)
	if err != nil {
		return false, err
	}

	states := map[string]int{}
	if err := result.GetAs(&states); err != nil {
		return false, ErrDirectory.MsgErr("unexpected isUserLocked result", err)
	}
	if len(states) != 1 {
		return false, ErrDirectory.Msg("isUserLocked returned more than one entry")
	}
	for _, v := range states {
		return v != 0, nil
	}
	return false, nil
}

// validateSingleDN rejects inputs that are not one well-formed DN: empty
// strings, list-like inputs, or DNs whose first component is not an
// attribute=value pair.
func validateSingleDN(dn string) error {
	if dn == "" {
		return ErrValidation.Msg("DN must be a non-empty string")
	}
	if strings.ContainsAny(dn, ";\n") || strings.HasPrefix(dn, "[") {
		return ErrValidation.Msg("expected a single DN, not a list: " + dn)
	}
	if _, _, err := SplitDN(dn); err != nil {
		return err
	}
	return nil
}

// RecoveryToken generates a password recovery token for the user associated
// with the given email address.
func (c *Client) RecoveryToken(email string) (string, error) {
	if email == "" {
		return "", ErrValidation.Msg("email must not be empty")
	}
	result, err := c.call(jsonrpc.MethodRecoveryToken, c.sessionID, email)
	if err != nil {
		return "", err
	}

	token := gjson.GetBytes(result.Raw(), "token")
	if !token.Exists() || token.String() == "" {
		return "", ErrDirectory.MsgErr("recovery result carries no token", &ServerPayloadError{Payload: result.Get()})
	}
	return token.String(), nil
}

// SetPassword sets a user's password using a token from RecoveryToken.
// The password is sent twice, filling the protocol's confirmation field.
func (c *Client) SetPassword(uid, password, token string) error {
	if uid == "" || password == "" || token == "" {
		return ErrValidation.Msg("uid, password, and token are all required")
	}
	_, err := c.call(jsonrpc.MethodRecoveryChange, c.sessionID, uid, password, password, token)
	return err
}
