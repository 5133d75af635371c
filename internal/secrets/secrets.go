// Package secrets resolves the OpenWeatherMap API key at startup,
// either from a HashiCorp Vault KV v2 secret or from the environment.
package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"

	vault "github.com/hashicorp/vault/api"
	"github.com/tstockdale/weather-map/internal/config"
	"go.uber.org/zap"
)

// EnvKey is the environment variable consulted when no Vault address
// is configured
const EnvKey = "OWM_API_KEY"

// Resolve fetches the API key synchronously and fails with a
// descriptive error when it cannot be obtained.
func Resolve(ctx context.Context, cfg config.VaultConfig, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Address == "" {
		key := strings.TrimSpace(os.Getenv(EnvKey))
		if key == "" {
			return "", fmt.Errorf("no Vault address configured and %s is not set", EnvKey)
		}
		logger.Info("API key loaded from environment")
		return key, nil
	}

	return fromVault(ctx, cfg, logger)
}

func fromVault(ctx context.Context, cfg config.VaultConfig, logger *zap.Logger) (string, error) {
	vaultCfg := vault.DefaultConfig()
	vaultCfg.Address = cfg.Address

	client, err := vault.NewClient(vaultCfg)
	if err != nil {
		return "", fmt.Errorf("failed to create Vault client: %w", err)
	}
	client.SetToken(cfg.Token)

	logger.Info("retrieving API key from Vault",
		zap.String("mount", cfg.Mount),
		zap.String("path", cfg.SecretPath),
	)

	secret, err := client.KVv2(cfg.Mount).Get(ctx, cfg.SecretPath)
	if err != nil {
		return "", fmt.Errorf("failed to read Vault secret at %q: %w", cfg.SecretPath, err)
	}

	value, ok := secret.Data[cfg.SecretKey].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("key %q not found in Vault secret at %q", cfg.SecretKey, cfg.SecretPath)
	}

	logger.Info("API key retrieved from Vault")
	return value, nil
}
