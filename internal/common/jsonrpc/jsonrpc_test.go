package jsonrpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructRequest(t *testing.T) {
	t.Run("positional params with nulls", func(t *testing.T) {
		data, err := ConstructRequest("go_api_wrapper", MethodCount, "sid-1", "user", nil, nil)
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"method":"count","params":["sid-1","user",null,null],"id":"go_api_wrapper"}`,
			string(data))
	})

	t.Run("no params encodes empty array", func(t *testing.T) {
		data, err := ConstructRequest("tag", MethodListDatabases)
		require.NoError(t, err)
		assert.JSONEq(t, `{"method":"listLdaps","params":[],"id":"tag"}`, string(data))
	})

	t.Run("nested values survive", func(t *testing.T) {
		values := map[string]map[string]any{"user": {"uid": "jdoe"}}
		data, err := ConstructRequest("tag", MethodSetFields, "sid", "user", nil, values)
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"method":"setFields","params":["sid","user",null,{"user":{"uid":"jdoe"}}],"id":"tag"}`,
			string(data))
	})
}

func TestParseResponse(t *testing.T) {
	t.Run("result with null error", func(t *testing.T) {
		resp, err := ParseResponse([]byte(`{"result":"sid-42","error":null}`))
		require.NoError(t, err)
		assert.True(t, resp.Error.IsNil())
		assert.Equal(t, "sid-42", resp.Result.Get())
	})

	t.Run("null result is preserved as nil", func(t *testing.T) {
		resp, err := ParseResponse([]byte(`{"result":null,"error":null}`))
		require.NoError(t, err)
		assert.True(t, resp.Result.IsNil())
	})

	t.Run("zero result is not nil", func(t *testing.T) {
		resp, err := ParseResponse([]byte(`{"result":0,"error":null}`))
		require.NoError(t, err)
		assert.False(t, resp.Result.IsNil())
	})

	t.Run("server error payload", func(t *testing.T) {
		resp, err := ParseResponse([]byte(`{"result":null,"error":{"code":104,"message":"no session"}}`))
		require.NoError(t, err)
		assert.False(t, resp.Error.IsNil())
	})

	t.Run("rejects non-envelope payloads", func(t *testing.T) {
		_, err := ParseResponse([]byte(`{"status":"ok"}`))
		assert.Error(t, err)

		_, err = ParseResponse([]byte(`not json`))
		assert.Error(t, err)
	})
}

func TestEmbeddedErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "non-empty errors list",
			body: `{"result":{"errors":["field uid is required","tab user unknown"]},"error":null}`,
			want: []string{"field uid is required", "tab user unknown"},
		},
		{
			name: "empty errors list is success",
			body: `{"result":{"errors":[]},"error":null}`,
			want: nil,
		},
		{
			name: "result without errors key",
			body: `{"result":{"uid":"jdoe"},"error":null}`,
			want: nil,
		},
		{
			name: "scalar result",
			body: `{"result":"cn=x,ou=y","error":null}`,
			want: nil,
		},
		{
			name: "null result",
			body: `{"result":null,"error":null}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ParseResponse([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.EmbeddedErrors())
		})
	}
}
