// Package jsonrpc implements the wire envelope spoken by the directory
// server's webservice endpoint. The protocol is the legacy JSON-RPC shape:
// requests carry {method, params, id} with positional params and no version
// field, responses carry {result, error}. The id field is an opaque client
// tag echoed back by the server, not a correlation counter.
package jsonrpc

import (
	"errors"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"

	"github.com/dirwise/fdapi/pkg/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MethodType represents an RPC method name.
type MethodType string

// Method catalogue of the directory webservice. The first positional
// parameter of every method except MethodLogin and MethodListDatabases is
// the active session identifier.
const (
	MethodLogin          MethodType = "login"
	MethodLogout         MethodType = "logout"
	MethodGetID          MethodType = "getId"
	MethodGetBase        MethodType = "getBase"
	MethodListTypes      MethodType = "listTypes"
	MethodInfos          MethodType = "infos"
	MethodListTabs       MethodType = "listTabs"
	MethodCount          MethodType = "count"
	MethodList           MethodType = "ls"
	MethodListDatabases  MethodType = "listLdaps"
	MethodGetFields      MethodType = "getFields"
	MethodGetTemplate    MethodType = "gettemplate"
	MethodSetFields      MethodType = "setFields"
	MethodUseTemplate    MethodType = "usetemplate"
	MethodDelete         MethodType = "delete"
	MethodRemoveTab      MethodType = "removetab"
	MethodLockUser       MethodType = "lockUser"
	MethodIsUserLocked   MethodType = "isUserLocked"
	MethodRecoveryToken  MethodType = "recoveryGenToken"
	MethodRecoveryChange MethodType = "recoveryConfirmPasswordChange"
)

// Request represents an RPC request. Params are positional and may contain
// nulls, which the server treats as unset arguments.
type Request struct {
	Method MethodType `json:"method"`
	Params []any      `json:"params"`
	ID     string     `json:"id"`
}

// Response represents an RPC response. Error must be inspected before
// Result: a non-null Error means the call failed regardless of Result.
type Response struct {
	Result types.NullableAny `json:"result"`
	Error  types.NullableAny `json:"error"`
}

// ConstructRequest builds the serialized request envelope. A nil params
// slice is encoded as an empty array, matching what the server expects for
// parameterless methods.
func ConstructRequest(id string, method MethodType, params ...any) ([]byte, error) {
	if params == nil {
		params = []any{}
	}
	req := Request{
		Method: method,
		Params: params,
		ID:     id,
	}
	return json.Marshal(req)
}

// ParseResponse unmarshals a response envelope. Payloads without a result
// or error key are rejected as not being an envelope at all.
func ParseResponse(data []byte) (*Response, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON in RPC response")
	}
	if !gjson.GetBytes(data, "result").Exists() && !gjson.GetBytes(data, "error").Exists() {
		return nil, errors.New("payload is not an RPC response envelope")
	}
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EmbeddedErrors extracts the "errors" list some operations embed inside an
// otherwise successful result object. Returns nil when the result is not an
// object or the list is empty.
func (r *Response) EmbeddedErrors() []string {
	raw := r.Result.Raw()
	if len(raw) == 0 {
		return nil
	}
	list := gjson.GetBytes(raw, "errors")
	if !list.IsArray() {
		return nil
	}
	var errs []string
	for _, e := range list.Array() {
		errs = append(errs, e.String())
	}
	return errs
}
