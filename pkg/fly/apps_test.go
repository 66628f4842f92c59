package fly

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obeli-sk/components-flyio/pkg/types"
)

func TestGetAppNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	app, err := client.GetApp(context.Background(), "demo")
	assert.NoError(t, err)
	assert.Nil(t, app)
}

func TestGetAppCarriesOrgSlug(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"app-1","name":"demo","organization":{"slug":"acme"}}`))
	}))

	app, err := client.GetApp(context.Background(), "demo")
	assert.NoError(t, err)
	if assert.NotNil(t, app) {
		assert.Equal(t, "app-1", app.ID)
		assert.Equal(t, "demo", app.Name)
		assert.Equal(t, types.OrgSlug("acme"), app.OrgSlug)
	}
}

func TestCreateApp(t *testing.T) {
	var gotBody map[string]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/apps", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"app-1"}`))
	}))

	app, err := client.CreateApp(context.Background(), "acme", "demo")
	assert.NoError(t, err)
	if assert.NotNil(t, app) {
		assert.Equal(t, "app-1", app.ID)
		assert.Equal(t, "demo", app.Name)
		assert.Equal(t, types.OrgSlug("acme"), app.OrgSlug)
	}
	assert.Equal(t, map[string]string{"app_name": "demo", "org_slug": "acme"}, gotBody)
}

func TestCreateAppUnprocessableSurfacesAPIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"Name has already been taken"}`))
	}))

	_, err := client.CreateApp(context.Background(), "acme", "demo")
	var apiErr *APIError
	if assert.True(t, errors.As(err, &apiErr)) {
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	}
}

func TestListApps(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "org_slug=acme", r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"apps":[{"id":"a","name":"one"},{"id":"b","name":"two"}]}`))
	}))

	apps, err := client.ListApps(context.Background(), "acme")
	assert.NoError(t, err)
	assert.Len(t, apps, 2)
	assert.Equal(t, "one", apps[0].Name)
}

func TestDeleteAppForce(t *testing.T) {
	var gotURL string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
	}))

	assert.NoError(t, client.DeleteApp(context.Background(), "demo", true))
	assert.Equal(t, "/apps/demo?force=true", gotURL)
}
