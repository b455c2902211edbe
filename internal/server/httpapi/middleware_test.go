package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/messagely/messagely/internal/logging"
	"github.com/messagely/messagely/internal/server/auth"
	"github.com/messagely/messagely/internal/server/models"
)

// ---- test logger ----

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (nopLogger) With(...any) logging.Logger            { return nopLogger{} }

// ---- fakes ----

type fakeSessions struct {
	loginToken string
	loginErr   error

	registerToken string
	registerErr   error
}

func (f *fakeSessions) Login(ctx context.Context, username, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

func (f *fakeSessions) Register(ctx context.Context, username, password, firstName, lastName, phone string) (string, error) {
	if f.registerErr != nil {
		return "", f.registerErr
	}
	return f.registerToken, nil
}

type fakeDirectory struct {
	getOut  *models.User
	getErr  error
	listOut []*models.User
	listErr error
	fromOut []*models.Message
	fromErr error
	toOut   []*models.Message
	toErr   error
}

func (f *fakeDirectory) Get(ctx context.Context, username string) (*models.User, error) {
	return f.getOut, f.getErr
}
func (f *fakeDirectory) List(ctx context.Context) ([]*models.User, error) {
	return f.listOut, f.listErr
}
func (f *fakeDirectory) MessagesFrom(ctx context.Context, username string) ([]*models.Message, error) {
	return f.fromOut, f.fromErr
}
func (f *fakeDirectory) MessagesTo(ctx context.Context, username string) ([]*models.Message, error) {
	return f.toOut, f.toErr
}

var testSecret = []byte("test-secret")

func newTestServer(sessions SessionService, directory DirectoryService) *Server {
	return NewServer(":0", nopLogger{}, sessions, directory, auth.NewTokenService(testSecret))
}

func issueTestToken(t *testing.T, username string) string {
	t.Helper()
	tok, err := auth.NewTokenService(testSecret).Issue(username)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	return tok
}

func doRequest(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)
	return rec
}

// ---- identify ----

func TestIdentify_BearerHeader(t *testing.T) {
	srv := newTestServer(&fakeSessions{}, &fakeDirectory{listOut: []*models.User{}})

	req := httptest.NewRequest("GET", "/users", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, "alice"))

	rec := doRequest(srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestIdentify_BodyTokenField(t *testing.T) {
	srv := newTestServer(&fakeSessions{}, &fakeDirectory{listOut: []*models.User{}})

	body, _ := json.Marshal(map[string]string{"_token": issueTestToken(t, "alice")})
	req := httptest.NewRequest("GET", "/users", bytes.NewReader(body))

	rec := doRequest(srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestIdentify_InvalidTokenProceedsAsAnonymous(t *testing.T) {
	// a bad token must not produce a different answer than no token
	srv := newTestServer(&fakeSessions{}, &fakeDirectory{listOut: []*models.User{}})

	anon := doRequest(srv, httptest.NewRequest("GET", "/users", nil))

	req := httptest.NewRequest("GET", "/users", nil)
	req.Header.Set("Authorization", "Bearer garbage.token.here")
	bad := doRequest(srv, req)

	if anon.Code != http.StatusUnauthorized || bad.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for both, got %d and %d", anon.Code, bad.Code)
	}
	if anon.Body.String() != bad.Body.String() {
		t.Fatalf("absent and invalid tokens must be indistinguishable:\n%s\nvs\n%s",
			anon.Body.String(), bad.Body.String())
	}
}

func TestIdentify_RestoresBodyForHandler(t *testing.T) {
	// the login handler must still see the credentials after the identify
	// stage has probed the body for _token
	srv := newTestServer(&fakeSessions{loginToken: "issued"}, &fakeDirectory{})

	body, _ := json.Marshal(map[string]string{
		"_token":   "not-a-valid-token",
		"username": "alice",
		"password": "pw",
	})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))

	rec := doRequest(srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "issued") {
		t.Fatalf("expected issued token in response, got %s", rec.Body.String())
	}
}

// ---- requireLoggedIn / requireSelf ----

func TestRequireLoggedIn_NoCaller(t *testing.T) {
	srv := newTestServer(&fakeSessions{}, &fakeDirectory{listOut: []*models.User{}})

	rec := doRequest(srv, httptest.NewRequest("GET", "/users", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireSelf_Match(t *testing.T) {
	srv := newTestServer(&fakeSessions{}, &fakeDirectory{getOut: &models.User{Username: "alice"}})

	req := httptest.NewRequest("GET", "/users/alice", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, "alice"))

	rec := doRequest(srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRequireSelf_WrongUserAndAbsentAreIndistinguishable(t *testing.T) {
	srv := newTestServer(&fakeSessions{}, &fakeDirectory{getOut: &models.User{Username: "alice"}})

	wrong := httptest.NewRequest("GET", "/users/alice", nil)
	wrong.Header.Set("Authorization", "Bearer "+issueTestToken(t, "bob"))
	wrongRec := doRequest(srv, wrong)

	absentRec := doRequest(srv, httptest.NewRequest("GET", "/users/alice", nil))

	if wrongRec.Code != http.StatusUnauthorized || absentRec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for both, got %d and %d", wrongRec.Code, absentRec.Code)
	}
	if wrongRec.Body.String() != absentRec.Body.String() {
		t.Fatalf("wrong-user and absent-caller must be indistinguishable")
	}
}

func TestRequireSelf_GatesMessageThreads(t *testing.T) {
	srv := newTestServer(&fakeSessions{}, &fakeDirectory{
		fromOut: []*models.Message{},
		toOut:   []*models.Message{},
	})

	for _, path := range []string{"/users/alice/from", "/users/alice/to"} {
		req := httptest.NewRequest("GET", path, nil)
		req.Header.Set("Authorization", "Bearer "+issueTestToken(t, "alice"))
		if rec := doRequest(srv, req); rec.Code != http.StatusOK {
			t.Fatalf("%s with own token: expected 200, got %d", path, rec.Code)
		}

		req = httptest.NewRequest("GET", path, nil)
		req.Header.Set("Authorization", "Bearer "+issueTestToken(t, "eve"))
		if rec := doRequest(srv, req); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s with foreign token: expected 401, got %d", path, rec.Code)
		}
	}
}
