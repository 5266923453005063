package directory

import (
	"encoding/json"

	"github.com/mitchellh/mapstructure"

	"github.com/dirwise/fdapi/internal/common/jsonrpc"
	"github.com/dirwise/fdapi/pkg/types"
)

// Tab describes one schema tab of an object type. Active is meaningful only
// when the listing was scoped to a concrete object.
type Tab struct {
	Name   string `mapstructure:"name" json:"name"`
	Active bool   `mapstructure:"active" json:"active"`
}

// ListObjectTypes returns the object types the server knows, keyed by type
// name with the displayable name as value.
func (c *Client) ListObjectTypes() (map[string]string, error) {
	result, err := c.call(jsonrpc.MethodListTypes, c.sessionID)
	if err != nil {
		return nil, err
	}
	out := map[string]string{}
	if result.IsNil() {
		return out, nil
	}
	if err := result.GetAs(&out); err != nil {
		return nil, ErrDirectory.MsgErr("unexpected listTypes result", err)
	}
	return out, nil
}

// ObjectTypeInfo returns the server's metadata for one object type.
func (c *Client) ObjectTypeInfo(objectType string) (map[string]any, error) {
	result, err := c.call(jsonrpc.MethodInfos, c.sessionID, objectType)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if result.IsNil() {
		return out, nil
	}
	if err := result.GetAs(&out); err != nil {
		return nil, ErrDirectory.MsgErr("unexpected infos result", err)
	}
	return out, nil
}

// ListTabs returns the tabs of an object type. With a non-empty dn the
// Active flags reflect that object; without one they reflect the defaults.
func (c *Client) ListTabs(objectType, dn string) (map[string]Tab, error) {
	result, err := c.call(jsonrpc.MethodListTabs, c.sessionID, objectType, optional(dn))
	if err != nil {
		return nil, err
	}
	tabs := map[string]Tab{}
	if result.IsNil() {
		return tabs, nil
	}
	raw, ok := result.Get().(map[string]any)
	if !ok {
		return nil, ErrDirectory.Msg("unexpected listTabs result shape")
	}
	if err := mapstructure.Decode(raw, &tabs); err != nil {
		return nil, ErrDirectory.MsgErr("failed to decode listTabs result", err)
	}
	return tabs, nil
}

// Count returns the number of objects of the given type, scoped to an OU
// and/or an LDAP filter when those are non-empty. Some object types (the
// server's pseudo types such as DASHBOARD, SPECIAL, and LDAPMANAGER) make
// the server answer null; that is normalized to -1 so a real count of 0
// stays distinguishable from "server refused to count".
func (c *Client) Count(objectType, ou, filter string) (int, error) {
	result, err := c.call(jsonrpc.MethodCount, c.sessionID, objectType, optional(ou), optional(filter))
	if err != nil {
		return 0, err
	}
	if result.IsNil() {
		return -1, nil
	}
	var n int
	if err := result.GetAs(&n); err != nil {
		return 0, ErrDirectory.MsgErr("unexpected count result", err)
	}
	return n, nil
}

// ListObjects lists objects of a type, keyed by DN. The value per DN is the
// attribute mapping, or the bare attribute value when attrs is a
// SingleAttribute selection. The server answers an empty JSON array instead
// of an object when nothing matches; that is normalized to an empty map.
func (c *Client) ListObjects(objectType string, attrs Attributes, ou, filter string) (map[string]any, error) {
	result, err := c.call(jsonrpc.MethodList, c.sessionID, objectType, attrs.wireValue(), optional(ou), optional(filter))
	if err != nil {
		return nil, err
	}
	return decodeObjectList(result.Raw())
}

// decodeObjectList normalizes an ls result: null or [] become an empty map.
func decodeObjectList(raw json.RawMessage) (map[string]any, error) {
	out := map[string]any{}
	if len(raw) == 0 {
		return out, nil
	}
	if raw[0] == '[' {
		var list []any
		if err := json.Unmarshal(raw, &list); err != nil || len(list) > 0 {
			return nil, ErrDirectory.Msg("unexpected ls result shape")
		}
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, ErrDirectory.MsgErr("failed to decode ls result", err)
	}
	return out, nil
}

// GetObject fetches the attributes of a single object. The lookup derives a
// search filter and base from the DN via SplitDN and issues an ls scoped to
// them, then extracts the entry keyed by the original DN. Returns an empty
// map when nothing matches. A zero attrs selection defaults to
// AllAttributes.
func (c *Client) GetObject(objectType, dn string, attrs Attributes) (map[string]any, error) {
	filter, base, err := SplitDN(dn)
	if err != nil {
		return nil, err
	}
	if attrs.IsZero() {
		attrs = AllAttributes()
	}

	result, err := c.call(jsonrpc.MethodList, c.sessionID, objectType, attrs.wireValue(), optional(base), filter)
	if err != nil {
		return nil, err
	}
	objects, err := decodeObjectList(result.Raw())
	if err != nil {
		return nil, err
	}

	entry, ok := objects[dn]
	if !ok {
		return map[string]any{}, nil
	}
	if m, ok := entry.(map[string]any); ok {
		return m, nil
	}
	// single-attribute selections map the DN straight to the value
	if name := attrs.singleName(); name != "" {
		return map[string]any{name: entry}, nil
	}
	return nil, ErrDirectory.Msg("unexpected ls entry shape for " + dn)
}

// GetFields returns the fields of an object type organized as
// section → field → value, reflecting stored values for dn or creation
// defaults when dn is empty. tab selects a tab other than main.
func (c *Client) GetFields(objectType, dn, tab string) (map[string]any, error) {
	result, err := c.call(jsonrpc.MethodGetFields, c.sessionID, objectType, optional(dn), optional(tab))
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if result.IsNil() {
		return out, nil
	}
	if err := result.GetAs(&out); err != nil {
		return nil, ErrDirectory.MsgErr("unexpected getFields result", err)
	}
	return out, nil
}

// GetTemplate returns a creation template, in the same nested shape as
// GetFields.
func (c *Client) GetTemplate(objectType, templateDN string) (map[string]any, error) {
	result, err := c.call(jsonrpc.MethodGetTemplate, c.sessionID, objectType, templateDN)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if result.IsNil() {
		return out, nil
	}
	if err := result.GetAs(&out); err != nil {
		return nil, ErrDirectory.MsgErr("unexpected gettemplate result", err)
	}
	return out, nil
}

// CreateObject creates a new object and returns its DN. With a non-empty
// templateDN the object is instantiated from that template; otherwise the
// fields are set directly with no target DN.
func (c *Client) CreateObject(objectType string, values Values, templateDN string) (string, error) {
	if templateDN != "" {
		return c.resultDN(c.call(jsonrpc.MethodUseTemplate, c.sessionID, objectType, templateDN, values))
	}
	return c.setFields(objectType, "", values)
}

// UpdateObject updates an existing object and returns its DN. values is the
// two-level tab → field → value mapping.
func (c *Client) UpdateObject(objectType, dn string, values Values) (string, error) {
	if dn == "" {
		return "", ErrValidation.Msg("update requires a target DN")
	}
	return c.setFields(objectType, dn, values)
}

func (c *Client) setFields(objectType, dn string, values Values) (string, error) {
	return c.resultDN(c.call(jsonrpc.MethodSetFields, c.sessionID, objectType, optional(dn), values))
}

// resultDN extracts the DN string operations like setFields return.
func (c *Client) resultDN(result types.NullableAny, err error) (string, error) {
	if err != nil {
		return "", err
	}
	var dn string
	if err := result.GetAs(&dn); err != nil {
		return "", ErrDirectory.MsgErr("server did not return a DN", err)
	}
	return dn, nil
}

// DeleteObject removes an object. The server returns nothing on success,
// so any non-empty result is reported as ErrDirectory carrying the payload.
func (c *Client) DeleteObject(objectType, dn string) error {
	result, err := c.call(jsonrpc.MethodDelete, c.sessionID, objectType, dn)
	if err != nil {
		return err
	}
	if !isEmptyResult(result.Raw()) {
		return ErrDirectory.MsgErr("delete returned unexpected content", &ServerPayloadError{Payload: result.Get()})
	}
	return nil
}

// isEmptyResult mirrors the server's "nothing" responses: null, empty
// string, empty array, empty object, 0, or false.
func isEmptyResult(raw json.RawMessage) bool {
	switch string(raw) {
	case "", "null", `""`, "[]", "{}", "0", "false":
		return true
	}
	return false
}

// DeleteTab removes a tab, with its fields, from an object and returns the
// object's DN.
func (c *Client) DeleteTab(objectType, dn, tab string) (string, error) {
	return c.resultDN(c.call(jsonrpc.MethodRemoveTab, c.sessionID, objectType, dn, tab))
}
