// Package types provides JSON value wrappers shared across the module.
// NullableAny distinguishes a JSON null (or absent field) from any set value,
// which the RPC layer needs because the directory server uses null results
// with meaning distinct from zero values.
package types

import (
	"bytes"
	"encoding/json"
	"errors"
)

// NullableAny holds an arbitrary JSON value. valid is false when the value
// is null or was never set.
type NullableAny struct {
	value json.RawMessage
	valid bool
}

// IsNil reports whether the value is null or unset.
func (n NullableAny) IsNil() bool {
	return !n.valid
}

// Set stores any JSON-serializable value. Raw JSON passed as
// json.RawMessage is validated rather than re-encoded.
func (n *NullableAny) Set(value any) error {
	var raw json.RawMessage

	switch v := value.(type) {
	case json.RawMessage:
		if !json.Valid(v) {
			n.value = nil
			n.valid = false
			return errors.New("value is not valid JSON")
		}
		raw = v
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			n.value = nil
			n.valid = false
			return err
		}
		raw = encoded
	}

	n.value = raw
	n.valid = true
	return nil
}

// Get returns the decoded value, or nil when unset or undecodable.
func (n NullableAny) Get() any {
	if !n.valid {
		return nil
	}
	var v any
	if err := json.Unmarshal(n.value, &v); err != nil {
		return nil
	}
	return v
}

// GetAs decodes the value into v. Returns an error when the value is unset.
func (n NullableAny) GetAs(v any) error {
	if !n.valid {
		return errors.New("value is not set")
	}
	return json.Unmarshal(n.value, v)
}

// Raw returns the underlying JSON bytes, nil when unset.
func (n NullableAny) Raw() json.RawMessage {
	if !n.valid {
		return nil
	}
	return n.value
}

// Equals compares two NullableAny values byte-wise.
func (n NullableAny) Equals(other NullableAny) bool {
	if n.valid && other.valid {
		return bytes.Equal(n.value, other.value)
	}
	return n.valid == other.valid
}

// MarshalJSON implements json.Marshaler. Unset values marshal to null.
func (n NullableAny) MarshalJSON() ([]byte, error) {
	if n.valid {
		return n.value, nil
	}
	return json.Marshal(nil)
}

// UnmarshalJSON implements json.Unmarshaler. null becomes the unset state.
func (n *NullableAny) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		n.value = nil
		n.valid = false
		return nil
	}
	if !json.Valid(data) {
		n.value = nil
		n.valid = false
		return errors.New("invalid JSON")
	}
	n.value = data
	n.valid = true
	return nil
}

// NullableAnyFrom wraps a value, returning an error when it cannot be
// serialized to JSON.
func NullableAnyFrom(value any) (NullableAny, error) {
	var n NullableAny
	if err := n.Set(value); err != nil {
		return NullableAny{}, err
	}
	return n, nil
}

// NilAny returns an unset NullableAny.
func NilAny() NullableAny {
	return NullableAny{}
}

var _ json.Marshaler = NullableAny{}
var _ json.Unmarshaler = &NullableAny{}
