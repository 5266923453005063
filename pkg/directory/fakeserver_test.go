package directory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// fakeDirectory is an in-memory stand-in for the directory webservice. It
// speaks the same envelope as the real endpoint and keeps enough state
// (objects per tab, lock flags) to exercise round-trip behavior.
type fakeDirectory struct {
	mu       sync.Mutex
	server   *httptest.Server
	requests int
	sid      string
	base     string
	objects  map[string]map[string]map[string]any // dn → tab → field → value
	locked   map[string]bool
	failHTTP bool // respond 500 to everything
}

type rpcRequest struct {
	Method string `json:"method"`
	Params []any  `json:"params"`
	ID     string `json:"id"`
}

func newFakeDirectory() *fakeDirectory {
	f := &fakeDirectory{
		sid:     "sid-test-1",
		base:    "dc=example,dc=com",
		objects: map[string]map[string]map[string]any{},
		locked:  map[string]bool{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *fakeDirectory) URL() string { return f.server.URL }
func (f *fakeDirectory) Close()      { f.server.Close() }

func (f *fakeDirectory) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

func (f *fakeDirectory) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++

	if f.failHTTP {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	result, rpcErr := f.dispatch(&req)
	resp := map[string]any{"result": result, "error": rpcErr}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (f *fakeDirectory) dispatch(req *rpcRequest) (result any, rpcErr any) {
	switch req.Method {
	case "login":
		// params: database, user, password
		if len(req.Params) != 3 || req.Params[2] != "secret" {
			return nil, map[string]any{"code": 104, "message": "invalid credentials"}
		}
		return f.sid, nil

	case "logout":
		return true, nil

	case "getId":
		if req.Params[0] != f.sid {
			return nil, map[string]any{"code": 105, "message": "no valid session"}
		}
		return f.sid, nil

	case "getBase":
		return f.base, nil

	case "listLdaps":
		return map[string]string{"default": "Example LDAP"}, nil

	case "listTypes":
		return map[string]string{"user": "Users", "ogroup": "Groups"}, nil

	case "infos":
		return map[string]any{"name": "User", "icon": "user.png"}, nil

	case "listTabs":
		return map[string]any{
			"user": map[string]any{"name": "User", "active": true},
			"mail": map[string]any{"name": "Mail", "active": false},
		}, nil

	case "count":
		switch req.Params[1] {
		case "DASHBOARD", "SPECIAL", "LDAPMANAGER":
			return nil, nil
		}
		return len(f.objects), nil

	case "ls":
		return f.list(req.Params)

	case "setFields":
		return f.setFields(req.Params)

	case "usetemplate":
		// params: sid, type, templateDN, values
		values, _ := req.Params[3].(map[string]any)
		return f.store("", values), nil

	case "delete":
		dn, _ := req.Params[2].(string)
		if _, ok := f.objects[dn]; !ok {
			return "no such object: " + dn, nil
		}
		delete(f.objects, dn)
		return nil, nil

	case "removetab":
		dn, _ := req.Params[2].(string)
		tab, _ := req.Params[3].(string)
		obj, ok := f.objects[dn]
		if !ok {
			return nil, map[string]any{"code": 110, "message": "unknown object"}
		}
		delete(obj, tab)
		return dn, nil

	case "lockUser":
		dn, _ := req.Params[1].(string)
		f.locked[dn] = req.Params[2] == "lock"
		return nil, nil

	case "isUserLocked":
		dn, _ := req.Params[1].(string)
		state := 0
		if f.locked[dn] {
			state = 1
		}
		return map[string]int{dn: state}, nil

	case "recoveryGenToken":
		return map[string]any{"token": "tok-recovery-1", "uid": nil}, nil

	case "recoveryConfirmPasswordChange":
		return true, nil
	}

	return nil, map[string]any{"code": 100, "message": "unknown method " + req.Method}
}

// setFields handles create (null dn) and update.
func (f *fakeDirectory) setFields(params []any) (any, any) {
	values, ok := params[3].(map[string]any)
	if !ok {
		return map[string]any{"errors": []string{"values must be a mapping of tabs"}}, nil
	}
	dn, _ := params[2].(string)
	return f.store(dn, values), nil
}

// store merges values into an object, creating it (and its DN) when dn is
// empty, and returns the DN.
func (f *fakeDirectory) store(dn string, values map[string]any) string {
	if dn == "" {
		uid := "new"
		if userTab, ok := values["user"].(map[string]any); ok {
			if v, ok := userTab["uid"].(string); ok {
				uid = v
			}
		}
		dn = "uid=" + uid + ",ou=people," + f.base
	}
	obj, ok := f.objects[dn]
	if !ok {
		obj = map[string]map[string]any{}
		f.objects[dn] = obj
	}
	for tab, fields := range values {
		fieldMap, ok := fields.(map[string]any)
		if !ok {
			continue
		}
		if obj[tab] == nil {
			obj[tab] = map[string]any{}
		}
		for k, v := range fieldMap {
			obj[tab][k] = v
		}
	}
	return dn
}

// list implements ls: filter on the RDN equality, scope by base, restrict
// to the requested attributes. No matches yields an empty array, the same
// quirk as the real server.
func (f *fakeDirectory) list(params []any) (any, any) {
	// params: sid, type, attributes, ou, filter
	attrs := params[2]
	ou, _ := params[3].(string)
	filter, _ := params[4].(string)

	out := map[string]any{}
	for dn, tabs := range f.objects {
		if filter != "" && !strings.HasPrefix(dn, strings.Trim(filter, "()")+",") {
			continue
		}
		if ou != "" && !strings.HasSuffix(dn, ou) {
			continue
		}

		merged := map[string]any{}
		for _, fields := range tabs {
			for k, v := range fields {
				merged[k] = v
			}
		}

		switch a := attrs.(type) {
		case string:
			if v, ok := merged[a]; ok {
				out[dn] = v
			}
		case map[string]any:
			entry := map[string]any{}
			for name := range a {
				if name == "objectClass" {
					continue
				}
				if v, ok := merged[name]; ok {
					entry[name] = v
				}
			}
			if _, all := a["objectClass"]; all {
				entry = merged
			}
			if len(entry) > 0 {
				out[dn] = entry
			}
		default:
			out[dn] = merged
		}
	}

	if len(out) == 0 {
		return []any{}, nil
	}
	return out, nil
}
