package secrets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tstockdale/weather-map/internal/config"
)

func TestResolve_FromEnvironment(t *testing.T) {
	t.Setenv(EnvKey, "env-api-key")

	key, err := Resolve(context.Background(), config.VaultConfig{}, nil)

	require.NoError(t, err)
	assert.Equal(t, "env-api-key", key)
}

func TestResolve_MissingEverywhereFails(t *testing.T) {
	t.Setenv(EnvKey, "")

	_, err := Resolve(context.Background(), config.VaultConfig{}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvKey)
}

// fakeVault serves the KV v2 read endpoint the client hits
func fakeVault(t *testing.T, secretData map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/secret/data/openweathermap_api" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "test-token", r.Header.Get("X-Vault-Token"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"data": secretData,
				"metadata": map[string]interface{}{
					"created_time":  "2024-01-01T00:00:00Z",
					"deletion_time": "",
					"destroyed":     false,
					"version":       1,
				},
			},
		})
	}))
}

func vaultConfig(address string) config.VaultConfig {
	return config.VaultConfig{
		Address:    address,
		Token:      "test-token",
		Mount:      "secret",
		SecretPath: "openweathermap_api",
		SecretKey:  "key",
	}
}

func TestResolve_FromVault(t *testing.T) {
	server := fakeVault(t, map[string]interface{}{"key": "vault-api-key"})
	defer server.Close()

	key, err := Resolve(context.Background(), vaultConfig(server.URL), nil)

	require.NoError(t, err)
	assert.Equal(t, "vault-api-key", key)
}

func TestResolve_VaultKeyMissing(t *testing.T) {
	server := fakeVault(t, map[string]interface{}{"other": "value"})
	defer server.Close()

	_, err := Resolve(context.Background(), vaultConfig(server.URL), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `key "key" not found`)
}

func TestResolve_VaultUnreachable(t *testing.T) {
	server := fakeVault(t, nil)
	address := server.URL
	server.Close()

	_, err := Resolve(context.Background(), vaultConfig(address), nil)

	assert.Error(t, err)
}
