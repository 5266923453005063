package directory

import (
	"encoding/json"
	"errors"
)

// AttributeMode selects how the server renders a requested attribute.
type AttributeMode string

// Attribute modes understood by the ls operation. ModeRaw returns untouched
// LDAP values and is mainly useful for DNs; ModeBase64 returns base64-encoded
// value arrays for binary attributes.
const (
	ModeSingle AttributeMode = "1"
	ModeAll    AttributeMode = "*"
	ModeBase64 AttributeMode = "b64"
	ModeRaw    AttributeMode = "raw"
)

type attrKind int

const (
	attrNone attrKind = iota // zero value: no attribute selection, wire null
	attrAll
	attrSingle
	attrSpec
)

// Attributes is a closed variant describing which attributes an ls call
// should return. The zero value requests the server default (a null wire
// parameter). Construct non-zero values with AllAttributes, SingleAttribute,
// or AttributeSpec.
type Attributes struct {
	kind attrKind
	name string
	spec map[string]AttributeMode
}

// AllAttributes requests the object classes of every entry, the widest
// selection the server supports without naming attributes.
func AllAttributes() Attributes {
	return Attributes{kind: attrAll}
}

// SingleAttribute requests one attribute; the result maps each DN directly
// to that attribute's value instead of to an attribute mapping.
func SingleAttribute(name string) Attributes {
	return Attributes{kind: attrSingle, name: name}
}

// AttributeSpec requests a set of attributes, each with an explicit mode.
func AttributeSpec(spec map[string]AttributeMode) Attributes {
	cp := make(map[string]AttributeMode, len(spec))
	for k, v := range spec {
		cp[k] = v
	}
	return Attributes{kind: attrSpec, spec: cp}
}

// IsZero reports whether no selection was made.
func (a Attributes) IsZero() bool {
	return a.kind == attrNone
}

// singleName returns the attribute name for single selections, "" otherwise.
func (a Attributes) singleName() string {
	if a.kind == attrSingle {
		return a.name
	}
	return ""
}

// wireValue returns the value placed in the RPC parameter list: nil, a bare
// string, or a name→mode object.
func (a Attributes) wireValue() any {
	switch a.kind {
	case attrAll:
		return map[string]AttributeMode{"objectClass": ModeAll}
	case attrSingle:
		return a.name
	case attrSpec:
		return a.spec
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler using the wire form.
func (a Attributes) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.wireValue())
}

// UnmarshalJSON is intentionally unsupported: Attributes only travel from
// client to server.
func (a *Attributes) UnmarshalJSON([]byte) error {
	return errors.New("attributes cannot be unmarshaled")
}
