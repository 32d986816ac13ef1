package config

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderClient_ListSecrets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/srv-1/secret-files", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"secretFile":{"name":"meta_access_token","content":"abc"},"cursor":"x"}]`))
	}))
	defer srv.Close()

	client := &RenderClient{APIKey: "key", BaseURL: srv.URL, HTTPClient: srv.Client()}

	secrets, err := client.ListSecrets(context.Background(), "srv-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"meta_access_token": "abc"}, secrets)
}

func TestRenderClient_AddOrUpdateSecret(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/services/srv-1/secret-files/meta_access_token", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
	}))
	defer srv.Close()

	client := &RenderClient{APIKey: "key", BaseURL: srv.URL, HTTPClient: srv.Client()}

	err := client.AddOrUpdateSecret(context.Background(), "srv-1", MetaAccessTokenSecret, "novo")
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":"novo"}`, body)
}

func TestRenderClient_AddOrUpdateSecret_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("unauthorized"))
	}))
	defer srv.Close()

	client := &RenderClient{APIKey: "key", BaseURL: srv.URL, HTTPClient: srv.Client()}

	err := client.AddOrUpdateSecret(context.Background(), "srv-1", MetaAccessTokenSecret, "novo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}
