package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"bankist/config"
	"bankist/shared"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bankist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Len(t, cfg.Accounts, 2)

	accounts, err := cfg.BootstrapAccounts()
	require.NoError(t, err)
	require.Equal(t, "js", accounts[0].Identifier)
	require.Equal(t, "jd", accounts[1].Identifier)
	require.Equal(t, shared.EUR, accounts[0].Currency)
	require.Equal(t, shared.EnUS, accounts[1].Locale)
	require.Len(t, accounts[0].Movements, 8)
	require.Equal(t, "25952.59", accounts[0].Balance().String())
	require.Equal(t, "2022-01-15T10:51:36.79Z", accounts[0].Movements[7].Timestamp.Format("2006-01-02T15:04:05.999999999Z07:00"))
}

func TestLoad_FileOverridesAccounts(t *testing.T) {
	path := writeFile(t, `
log_level: debug
accounts:
  - owner: Steven Thomas Williams
    pin: 3333
    interest_rate: 0.7
    currency: GBP
    locale: en-GB
    movements:
      - { amount: "200", date: "2022-01-01T10:00:00Z" }
`)

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Len(t, cfg.Accounts, 1)

	accounts, err := cfg.BootstrapAccounts()
	require.NoError(t, err)
	require.Equal(t, "stw", accounts[0].Identifier)
	require.Equal(t, shared.GBP, accounts[0].Currency)
	require.Equal(t, "0.7", accounts[0].InterestRate.String())
}

func TestLoad_EnvironmentAndFlags(t *testing.T) {
	t.Setenv("BANKIST_LOG_LEVEL", "warn")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("addr", ":8080", "")
	require.NoError(t, flags.Parse([]string{"--addr", ":9090"}))

	cfg, err := config.Load("", flags)
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, ":9090", cfg.HTTP.Addr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown currency", content: `
accounts:
  - { owner: A B, pin: 1, interest_rate: "1", currency: XYZ, locale: en-US }
`},
		{name: "bad locale", content: `
accounts:
  - { owner: A B, pin: 1, interest_rate: "1", currency: USD, locale: "not a locale" }
`},
		{name: "missing owner", content: `
accounts:
  - { pin: 1, interest_rate: "1", currency: USD, locale: en-US }
`},
		{name: "bad movement date", content: `
accounts:
  - owner: A B
    pin: 1
    interest_rate: "1"
    currency: USD
    locale: en-US
    movements:
      - { amount: "10", date: "yesterday" }
`},
		{name: "bad log level", content: `
log_level: loud
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, tt.content), nil)
			require.Error(t, err)
		})
	}
}
