package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/coachdesk/internal/security"
)

var configEnvKeys = []string{
	"BACKEND_URL", "PORT", "SECRET_KEY", "DB_PATH", "COOKIE_SECURE",
	"LOG_LEVEL", "LOG_FORMAT", "LOG_FETCH_CAP", "PAGE_SIZE", "REQUEST_TIMEOUT", "TZ",
}

func isolateConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
	t.Chdir(home)
	return home
}

func writeTestConfig(t *testing.T, home string, contents string) {
	t.Helper()
	configDir := filepath.Join(home, ".config", "coachdesk")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "coachdesk.toml"), []byte(contents), 0o644))
}

func TestLoadRequiresBackendURL(t *testing.T) {
	isolateConfig(t)

	_, err := Load(Overrides{})
	assert.ErrorIs(t, err, ErrBackendURLRequired)
}

func TestLoadDefaultsGenerateEphemeralSecret(t *testing.T) {
	home := isolateConfig(t)
	t.Setenv("BACKEND_URL", "https://api.example.com/")

	cfg, err := Load(Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.BackendURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, filepath.Join(home, ".local", "share", "coachdesk", "coachdesk.db"), cfg.DBPath)
	assert.Equal(t, 1000, cfg.LogFetchCap)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.CookieSecure)
	assert.True(t, cfg.SecretGenerated)
	assert.Len(t, cfg.SecretKey, security.SessionSecretLength)
}

func TestLoadPriorityFlagsOverFileOverEnv(t *testing.T) {
	home := isolateConfig(t)
	writeTestConfig(t, home, `
backend_url = "https://file.example.com"
port = "4000"
page_size = 50
`)
	t.Setenv("BACKEND_URL", "https://env.example.com")
	t.Setenv("PORT", "5000")
	t.Setenv("LOG_FETCH_CAP", "250")
	t.Setenv("SECRET_KEY", "0123456789abcdef0123456789abcdef")

	cfg, err := Load(Overrides{Port: "6000"})
	require.NoError(t, err)

	assert.Equal(t, "https://file.example.com", cfg.BackendURL)
	assert.Equal(t, "6000", cfg.Port)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, 250, cfg.LogFetchCap)
	assert.False(t, cfg.SecretGenerated)
}

func TestLoadRejectsWeakSecrets(t *testing.T) {
	isolateConfig(t)
	t.Setenv("BACKEND_URL", "https://api.example.com")

	for _, secret := range []string{"change_me_in_production", "replace_with_at_least_32_random_characters", "too-short-secret"} {
		t.Setenv("SECRET_KEY", secret)
		_, err := Load(Overrides{})
		assert.ErrorIs(t, err, ErrSecretKeyInsecure, secret)
	}
}

func TestLoadRejectsInvalidLimits(t *testing.T) {
	isolateConfig(t)
	t.Setenv("BACKEND_URL", "https://api.example.com")
	t.Setenv("PAGE_SIZE", "0")

	_, err := Load(Overrides{})
	assert.ErrorIs(t, err, ErrLimitInvalid)
}

func TestValidatePort(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "9090", want: "9090"},
		{raw: " 80 ", want: "80"},
		{raw: "0", wantErr: true},
		{raw: "70000", wantErr: true},
		{raw: "not-a-number", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ValidatePort(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPortInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
