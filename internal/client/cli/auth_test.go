package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/messagely/messagely/internal/client/config"
)

func stubInput(t *testing.T, answers []string, password string) {
	t.Helper()

	origText := getSimpleText
	origPassword := getPassword
	t.Cleanup(func() {
		getSimpleText = origText
		getPassword = origPassword
	})

	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		require.Less(t, i, len(answers), "unexpected extra prompt")
		answer := answers[i]
		i++
		return answer, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
}

func newTestApp(t *testing.T, handler http.Handler) (*App, *bytes.Buffer) {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	app, err := NewApp(&config.Config{ServerEndpointAddr: ts.URL})
	require.NoError(t, err)

	var out bytes.Buffer
	app.out = &out
	app.reader = bufio.NewReader(strings.NewReader(""))
	return app, &out
}

func TestAppLogin(t *testing.T) {
	stubInput(t, []string{"bob"}, "secret123")

	app, out := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "bob", body["username"])
		assert.Equal(t, "secret123", body["password"])

		json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
	}))

	err := app.Login(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "bob", app.userName)
	assert.True(t, app.isLoggedIn())
	assert.Contains(t, out.String(), "Logged in.")
}

func TestAppLogin_BadCredentials(t *testing.T) {
	stubInput(t, []string{"bob"}, "wrong")

	app, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"error": "invalid username/password", "status": 401})
	}))

	err := app.Login(context.Background())
	require.Error(t, err)
	assert.False(t, app.isLoggedIn())
	assert.Empty(t, app.userName)
}

func TestAppRegister(t *testing.T) {
	stubInput(t, []string{"alice", "Alice", "Smith", "+14150000000"}, "secret123")

	app, out := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/register", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "Alice", body["first_name"])
		assert.Equal(t, "Smith", body["last_name"])
		assert.Equal(t, "+14150000000", body["phone"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-2"})
	}))

	err := app.Register(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "alice", app.userName)
	assert.True(t, app.isLoggedIn())
	assert.Contains(t, out.String(), "Success!")
}
