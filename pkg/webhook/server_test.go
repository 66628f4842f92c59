package webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obeli-sk/components-flyio/pkg/types"
)

type fakeSecretWriter struct {
	apps   []types.AppName
	keys   []types.SecretKey
	values []string
	err    error
}

func (f *fakeSecretWriter) SetSecret(ctx context.Context, appName types.AppName, key types.SecretKey, value string) error {
	f.apps = append(f.apps, appName)
	f.keys = append(f.keys, key)
	f.values = append(f.values, value)
	return f.err
}

func postSecret(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestUpdateSecret(t *testing.T) {
	writer := &fakeSecretWriter{}
	srv := NewServer(writer)

	rec := postSecret(t, srv, `{"app_name":"test-app","name":"DB-PASSWORD","value":"hunter2"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.Len(t, writer.apps, 1) {
		assert.Equal(t, types.AppName("test-app"), writer.apps[0])
		assert.Equal(t, types.SecretKey("DB-PASSWORD"), writer.keys[0])
		assert.Equal(t, "hunter2", writer.values[0])
	}
}

func TestUpdateSecretRejectsBadSlug(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "app name with path traversal", body: `{"app_name":"../other","name":"KEY","value":"v"}`},
		{name: "secret name with query", body: `{"app_name":"test-app","name":"KEY?x=1","value":"v"}`},
		{name: "empty app name", body: `{"app_name":"","name":"KEY","value":"v"}`},
		{name: "empty value", body: `{"app_name":"test-app","name":"KEY","value":""}`},
		{name: "malformed json", body: `{"app_name":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := &fakeSecretWriter{}
			srv := NewServer(writer)

			rec := postSecret(t, srv, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, writer.apps, "provider must not be called for invalid input")
		})
	}
}

func TestUpdateSecretProviderFailure(t *testing.T) {
	writer := &fakeSecretWriter{err: errors.New("failed to put secret 'KEY' for app 'test-app'")}
	srv := NewServer(writer)

	rec := postSecret(t, srv, `{"app_name":"test-app","name":"KEY","value":"v"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to put secret")
}

func TestHealthEndpoint(t *testing.T) {
	srv := NewServer(&fakeSecretWriter{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	srv := NewServer(&fakeSecretWriter{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
