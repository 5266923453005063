package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirwise/fdapi/internal/common/httpclient"
)

// testClient logs in against a fresh fake server. EnforceEncryption is off
// because httptest serves plain HTTP.
func testClient(t *testing.T) (*Client, *fakeDirectory) {
	t.Helper()
	fake := newFakeDirectory()
	t.Cleanup(fake.Close)

	cfg := NewConfig(fake.URL(), "admin", "secret", "default")
	cfg.EnforceEncryption = false
	cfg.ClientTag = "go_test_client"

	client, err := New(cfg)
	require.NoError(t, err)
	return client, fake
}

func TestNew(t *testing.T) {
	t.Run("plaintext host with enforcement fails before any dial", func(t *testing.T) {
		fake := newFakeDirectory()
		defer fake.Close()

		cfg := NewConfig(fake.URL(), "admin", "secret", "default")
		_, err := New(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.Equal(t, 0, fake.requestCount())
	})

	t.Run("missing credentials fail validation", func(t *testing.T) {
		cfg := NewConfig("https://fd.example.com", "", "", "default")
		_, err := New(cfg)
		assert.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("auto-login stores the session id", func(t *testing.T) {
		client, fake := testClient(t)
		assert.Equal(t, fake.sid, client.sessionID)
		assert.Equal(t, 1, fake.requestCount())
	})

	t.Run("without auto-login no call is made", func(t *testing.T) {
		fake := newFakeDirectory()
		defer fake.Close()

		cfg := NewConfig(fake.URL(), "admin", "secret", "default")
		cfg.EnforceEncryption = false
		cfg.AutoLogin = false
		client, err := New(cfg)
		require.NoError(t, err)
		assert.Equal(t, 0, fake.requestCount())
		assert.Empty(t, client.sessionID)
	})

	t.Run("empty client tag gets generated", func(t *testing.T) {
		fake := newFakeDirectory()
		defer fake.Close()

		cfg := NewConfig(fake.URL(), "admin", "secret", "default")
		cfg.EnforceEncryption = false
		cfg.AutoLogin = false
		client, err := New(cfg)
		require.NoError(t, err)
		assert.Contains(t, client.config.ClientTag, "go_api_wrapper_")
	})
}

func TestLogin(t *testing.T) {
	t.Run("bad credentials become ErrAuthentication", func(t *testing.T) {
		fake := newFakeDirectory()
		defer fake.Close()

		cfg := NewConfig(fake.URL(), "admin", "wrong", "default")
		cfg.EnforceEncryption = false
		_, err := New(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAuthentication)
	})

	t.Run("transport failure stays ErrTransport", func(t *testing.T) {
		fake := newFakeDirectory()
		defer fake.Close()
		fake.failHTTP = true

		cfg := NewConfig(fake.URL(), "admin", "secret", "default")
		cfg.EnforceEncryption = false
		_, err := New(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTransport)
		assert.NotErrorIs(t, err, ErrAuthentication)

		var httpErr *httpclient.HTTPError
		assert.ErrorAs(t, err, &httpErr)
	})
}

func TestSessionLifecycle(t *testing.T) {
	client, fake := testClient(t)

	sid, err := client.SessionID()
	require.NoError(t, err)
	assert.Equal(t, fake.sid, sid)

	_, err = client.Logout()
	require.NoError(t, err)

	before := fake.requestCount()
	sid, err = client.SessionID()
	require.NoError(t, err)
	assert.Empty(t, sid)
	// absent session short-circuits without contacting the server
	assert.Equal(t, before, fake.requestCount())
}

func TestLogoutClearsSessionEvenOnServerError(t *testing.T) {
	client, fake := testClient(t)
	fake.failHTTP = true

	_, err := client.Logout()
	assert.Error(t, err)
	assert.Empty(t, client.sessionID)
}

func TestBaseAndCatalogs(t *testing.T) {
	client, _ := testClient(t)

	base, err := client.Base()
	require.NoError(t, err)
	assert.Equal(t, "dc=example,dc=com", base)

	dbs, err := client.ListDatabases()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"default": "Example LDAP"}, dbs)

	typesList, err := client.ListObjectTypes()
	require.NoError(t, err)
	assert.Equal(t, "Users", typesList["user"])

	info, err := client.ObjectTypeInfo("user")
	require.NoError(t, err)
	assert.Equal(t, "User", info["name"])
}

func TestListTabs(t *testing.T) {
	client, _ := testClient(t)

	tabs, err := client.ListTabs("user", "")
	require.NoError(t, err)
	require.Len(t, tabs, 2)
	assert.Equal(t, Tab{Name: "User", Active: true}, tabs["user"])
	assert.Equal(t, Tab{Name: "Mail", Active: false}, tabs["mail"])
}

func TestCount(t *testing.T) {
	client, _ := testClient(t)

	t.Run("null-result types normalize to -1", func(t *testing.T) {
		for _, objectType := range []string{"DASHBOARD", "SPECIAL", "LDAPMANAGER"} {
			n, err := client.Count(objectType, "", "")
			require.NoError(t, err, objectType)
			assert.Equal(t, -1, n, objectType)
		}
	})

	t.Run("real empty count is 0, not -1", func(t *testing.T) {
		n, err := client.Count("user", "", "")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("count follows the store", func(t *testing.T) {
		_, err := client.CreateObject("user", Values{"user": {"uid": "counted"}}, "")
		require.NoError(t, err)
		n, err := client.Count("user", "", "")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestListObjects(t *testing.T) {
	client, _ := testClient(t)

	t.Run("no matches is an empty map, not an error", func(t *testing.T) {
		objects, err := client.ListObjects("user", Attributes{}, "", "(uid=nobody)")
		require.NoError(t, err)
		assert.NotNil(t, objects)
		assert.Empty(t, objects)
	})

	t.Run("lists stored objects", func(t *testing.T) {
		dn, err := client.CreateObject("user", Values{"user": {"uid": "listme", "cn": "List Me"}}, "")
		require.NoError(t, err)

		objects, err := client.ListObjects("user", Attributes{}, "", "")
		require.NoError(t, err)
		require.Contains(t, objects, dn)

		entry, ok := objects[dn].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "listme", entry["uid"])
	})

	t.Run("single attribute maps dn to bare value", func(t *testing.T) {
		dn, err := client.CreateObject("user", Values{"user": {"uid": "bare", "cn": "Bare"}}, "")
		require.NoError(t, err)

		objects, err := client.ListObjects("user", SingleAttribute("cn"), "", "(uid=bare)")
		require.NoError(t, err)
		assert.Equal(t, "Bare", objects[dn])
	})
}

func TestCreateGetRoundTrip(t *testing.T) {
	client, _ := testClient(t)

	values := Values{"user": {"uid": "jdoe", "cn": "John Doe", "sn": "Doe"}}
	dn, err := client.CreateObject("user", values, "")
	require.NoError(t, err)
	assert.Equal(t, "uid=jdoe,ou=people,dc=example,dc=com", dn)

	got, err := client.GetObject("user", dn, AttributeSpec(map[string]AttributeMode{
		"uid": ModeSingle,
		"cn":  ModeSingle,
		"sn":  ModeSingle,
	}))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"uid": "jdoe", "cn": "John Doe", "sn": "Doe"}, got)
}

func TestGetObject(t *testing.T) {
	client, _ := testClient(t)

	t.Run("no match is an empty map", func(t *testing.T) {
		got, err := client.GetObject("user", "uid=ghost,ou=people,dc=example,dc=com", Attributes{})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("malformed dn is ErrValidation", func(t *testing.T) {
		_, err := client.GetObject("user", "not a dn", Attributes{})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("single attribute wraps the bare value", func(t *testing.T) {
		dn, err := client.CreateObject("user", Values{"user": {"uid": "single", "cn": "Single"}}, "")
		require.NoError(t, err)

		got, err := client.GetObject("user", dn, SingleAttribute("cn"))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"cn": "Single"}, got)
	})
}

func TestCreateFromTemplate(t *testing.T) {
	client, _ := testClient(t)

	dn, err := client.CreateObject("user", Values{"user": {"uid": "tmpl"}}, "cn=usertemplate,ou=templates,dc=example,dc=com")
	require.NoError(t, err)
	assert.Equal(t, "uid=tmpl,ou=people,dc=example,dc=com", dn)
}

func TestUpdateObject(t *testing.T) {
	client, _ := testClient(t)

	dn, err := client.CreateObject("user", Values{"user": {"uid": "upd", "cn": "Before"}}, "")
	require.NoError(t, err)

	updated, err := client.UpdateObject("user", dn, Values{"user": {"cn": "After"}})
	require.NoError(t, err)
	assert.Equal(t, dn, updated)

	got, err := client.GetObject("user", dn, SingleAttribute("cn"))
	require.NoError(t, err)
	assert.Equal(t, "After", got["cn"])

	t.Run("empty dn is ErrValidation", func(t *testing.T) {
		_, err := client.UpdateObject("user", "", Values{"user": {"cn": "x"}})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestDeleteObject(t *testing.T) {
	client, _ := testClient(t)

	dn, err := client.CreateObject("user", Values{"user": {"uid": "doomed"}}, "")
	require.NoError(t, err)

	require.NoError(t, client.DeleteObject("user", dn))

	got, err := client.GetObject("user", dn, Attributes{})
	require.NoError(t, err)
	assert.Empty(t, got)

	t.Run("unexpected content is ErrDirectory with payload", func(t *testing.T) {
		err := client.DeleteObject("user", dn) // already gone
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDirectory)

		var payload *ServerPayloadError
		require.ErrorAs(t, err, &payload)
		assert.Contains(t, payload.Payload, "no such object")
	})
}

func TestDeleteTab(t *testing.T) {
	client, _ := testClient(t)

	dn, err := client.CreateObject("user", Values{
		"user": {"uid": "tabbed", "cn": "Tabbed"},
		"mail": {"mail": "tabbed@example.com"},
	}, "")
	require.NoError(t, err)

	returned, err := client.DeleteTab("user", dn, "mail")
	require.NoError(t, err)
	assert.Equal(t, dn, returned)

	// the tab's field is gone: requesting only it yields an empty map
	got, err := client.GetObject("user", dn, AttributeSpec(map[string]AttributeMode{"mail": ModeSingle}))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLocking(t *testing.T) {
	client, _ := testClient(t)

	dn, err := client.CreateObject("user", Values{"user": {"uid": "lockme"}}, "")
	require.NoError(t, err)

	locked, err := client.UserIsLocked(dn)
	require.NoError(t, err)
	assert.False(t, locked)

	require.NoError(t, client.LockUser(dn))
	locked, err = client.UserIsLocked(dn)
	require.NoError(t, err)
	assert.True(t, locked)

	// locking twice does not error
	require.NoError(t, client.LockUser(dn))

	require.NoError(t, client.UnlockUser(dn))
	locked, err = client.UserIsLocked(dn)
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestUserIsLockedValidation(t *testing.T) {
	client, _ := testClient(t)

	for _, dn := range []string{
		"",
		"uid=a,dc=x;uid=b,dc=y",
		"[uid=a,dc=x]",
		"uid=a\nuid=b",
		"not a dn",
	} {
		_, err := client.UserIsLocked(dn)
		assert.ErrorIs(t, err, ErrValidation, "dn=%q", dn)
	}
}

func TestPasswordRecovery(t *testing.T) {
	client, _ := testClient(t)

	token, err := client.RecoveryToken("jdoe@example.com")
	require.NoError(t, err)
	assert.Equal(t, "tok-recovery-1", token)

	require.NoError(t, client.SetPassword("jdoe", "n3wpassw0rd", token))

	t.Run("empty arguments are ErrValidation", func(t *testing.T) {
		_, err := client.RecoveryToken("")
		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorIs(t, client.SetPassword("", "pw", "tok"), ErrValidation)
		assert.ErrorIs(t, client.SetPassword("uid", "", "tok"), ErrValidation)
		assert.ErrorIs(t, client.SetPassword("uid", "pw", ""), ErrValidation)
	})
}

// stubTransport returns canned bodies in order, failing the test when more
// calls arrive than bodies were queued.
type stubTransport struct {
	t      *testing.T
	bodies [][]byte
	calls  int
}

func (s *stubTransport) Post(body []byte) ([]byte, error) {
	if s.calls >= len(s.bodies) {
		s.t.Fatalf("unexpected call %d to stub transport", s.calls+1)
	}
	resp := s.bodies[s.calls]
	s.calls++
	return resp, nil
}

func TestMalformedResponsesBecomeErrTransport(t *testing.T) {
	for _, body := range []string{
		`not json at all`,
		`{"status":"ok"}`, // valid JSON, not an envelope
	} {
		cfg := NewConfig("https://fd.example.com", "admin", "secret", "default")
		cfg.AutoLogin = false
		client, err := NewWithTransport(cfg, &stubTransport{t: t, bodies: [][]byte{[]byte(body)}})
		require.NoError(t, err)

		_, err = client.Login("admin", "secret", "default")
		require.Error(t, err, body)
		assert.ErrorIs(t, err, ErrTransport, body)
	}
}

func TestLoginRejectsEmptySessionID(t *testing.T) {
	cfg := NewConfig("https://fd.example.com", "admin", "secret", "default")
	cfg.AutoLogin = false
	client, err := NewWithTransport(cfg, &stubTransport{t: t, bodies: [][]byte{
		[]byte(`{"result":"","error":null}`),
	}})
	require.NoError(t, err)

	_, err = client.Login("admin", "secret", "default")
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestEmbeddedErrorsBecomeErrDirectory(t *testing.T) {
	client, _ := testClient(t)

	// the fake answers setFields with an embedded errors list when values
	// is not a mapping of tabs; force that by sending a nil values map
	_, err := client.CreateObject("user", nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDirectory)

	var payload *ServerPayloadError
	require.ErrorAs(t, err, &payload)
}
