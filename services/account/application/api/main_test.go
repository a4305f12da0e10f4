package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/webapp/pkg/app"
	"github.com/ghuser/webapp/pkg/auth"
	"github.com/ghuser/webapp/pkg/logger"
	appsvcs "github.com/ghuser/webapp/services/account/application/services"
	"github.com/ghuser/webapp/services/account/infrastructure/persistence/memory"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := logger.Discard()
	svcs := &appsvcs.Services{
		Account: appsvcs.NewAccountService(memory.NewAccountRepository(), auth.NewBcryptHasher(0), log),
	}
	a := &app.Application{Logger: log, Authenticate: auth.RequireAuth(svcs.Account, log)}

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		AccountRoutes(r, a, svcs)
	})
	return r
}

func do(t *testing.T, h http.Handler, method, path, body, user, pass string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(user+":"+pass)))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

const registration = `{"email":"ada@example.com","password":"s3cret","firstName":"Ada","lastName":"Lovelace"}`

func TestCreateAccount(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/v1/user", registration, "", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["email"] != "ada@example.com" || body["firstName"] != "Ada" || body["lastName"] != "Lovelace" {
		t.Errorf("unexpected body: %v", body)
	}
	if _, ok := body["password"]; ok {
		t.Error("password must never be serialized")
	}
	if body["accountCreated"] != body["accountUpdated"] {
		t.Errorf("expected equal timestamps, got %v / %v", body["accountCreated"], body["accountUpdated"])
	}
	if body["id"] == "" || body["id"] == nil {
		t.Error("expected generated id")
	}
}

func TestCreateAccount_Duplicate(t *testing.T) {
	h := newTestRouter(t)

	if rec := do(t, h, http.MethodPost, "/v1/user", registration, "", ""); rec.Code != http.StatusCreated {
		t.Fatalf("first create: %d", rec.Code)
	}
	rec := do(t, h, http.MethodPost, "/v1/user", registration, "", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["error"] != "Conflict" || body["path"] != "/v1/user" {
		t.Errorf("unexpected envelope: %v", body)
	}
}

func TestCreateAccount_Invalid(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"bad email", `{"email":"nope","password":"x","firstName":"A","lastName":"B"}`, "email"},
		{"missing last name", `{"email":"a@example.com","password":"x","firstName":"A"}`, "lastName"},
		{"blank password", `{"email":"a@example.com","password":"  ","firstName":"A","lastName":"B"}`, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/user", tt.body, "", "")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			fields, _ := decode(t, rec)["fields"].(map[string]any)
			if _, ok := fields[tt.field]; !ok {
				t.Errorf("expected field %q in %v", tt.field, fields)
			}
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/v1/user", `{"email":`, "", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGetSelf(t *testing.T) {
	h := newTestRouter(t)
	do(t, h, http.MethodPost, "/v1/user", registration, "", "")

	t.Run("authenticated", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/v1/user/self", "", "ada@example.com", "s3cret")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if decode(t, rec)["email"] != "ada@example.com" {
			t.Error("expected own account")
		}
	})

	t.Run("no credential", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/v1/user/self", "", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if got := rec.Header().Get("WWW-Authenticate"); got != `Basic realm="webapp"` {
			t.Errorf("unexpected WWW-Authenticate %q", got)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/v1/user/self", "", "ada@example.com", "nope")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestUpdateSelf(t *testing.T) {
	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			h := newTestRouter(t)
			do(t, h, http.MethodPost, "/v1/user", registration, "", "")

			update := `{"firstName":"Augusta","lastName":"King","password":"rotated","email":"other@example.com"}`
			rec := do(t, h, method, "/v1/user/self", update, "ada@example.com", "s3cret")
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			body := decode(t, rec)
			if body["firstName"] != "Augusta" || body["email"] != "ada@example.com" {
				t.Errorf("unexpected body: %v", body)
			}

			if rec := do(t, h, http.MethodGet, "/v1/user/self", "", "ada@example.com", "s3cret"); rec.Code != http.StatusUnauthorized {
				t.Errorf("old password: expected 401, got %d", rec.Code)
			}
			if rec := do(t, h, http.MethodGet, "/v1/user/self", "", "ada@example.com", "rotated"); rec.Code != http.StatusOK {
				t.Errorf("new password: expected 200, got %d", rec.Code)
			}
		})
	}
}

func TestUpdateSelf_Invalid(t *testing.T) {
	h := newTestRouter(t)
	do(t, h, http.MethodPost, "/v1/user", registration, "", "")

	rec := do(t, h, http.MethodPut, "/v1/user/self", `{"firstName":"","lastName":"King","password":"p"}`, "ada@example.com", "s3cret")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHealth(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/v1/user/health", "", "", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "User API is running" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}
