package fly

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obeli-sk/components-flyio/pkg/config"
)

// newTestClient points a client at a fake provider server.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(&config.Config{
		APIToken: "test-token",
		BaseURL:  srv.URL,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient(&config.Config{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), config.EnvAPIToken)
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Status: 500, Body: `{"error":"boom"}`}
	assert.Equal(t, `failed with status 500: {"error":"boom"}`, err.Error())
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"id":"app-1","name":"demo","organization":{"slug":"acme"}}`))
	}))

	app, err := client.GetApp(context.Background(), "demo")
	assert.NoError(t, err)
	assert.NotNil(t, app)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestDecodeErrorEmbedsRawBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))

	_, err := client.GetApp(context.Background(), "demo")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not json at all")
}
