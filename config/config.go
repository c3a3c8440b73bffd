package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"bankist/domain"
	"bankist/shared"
)

//go:embed defaults.yaml
var defaults []byte

const envPrefix = "BANKIST"

type Config struct {
	LogLevel string          `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	HTTP     HTTPConfig      `mapstructure:"http"`
	Accounts []AccountConfig `mapstructure:"accounts" validate:"required,min=1,dive"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

// AccountConfig is one bootstrap account. Amounts and the interest rate are
// kept as strings so they reach decimal.Decimal without float rounding.
type AccountConfig struct {
	Owner        string           `mapstructure:"owner" validate:"required"`
	PIN          int              `mapstructure:"pin" validate:"gte=0"`
	InterestRate string           `mapstructure:"interest_rate" validate:"required,numeric"`
	Currency     string           `mapstructure:"currency" validate:"required,iso4217"`
	Locale       string           `mapstructure:"locale" validate:"required,bcp47_language_tag"`
	Movements    []MovementConfig `mapstructure:"movements" validate:"dive"`
}

type MovementConfig struct {
	Amount string `mapstructure:"amount" validate:"required,numeric"`
	Date   string `mapstructure:"date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// Load reads the embedded defaults, merges the optional file at path, then
// applies BANKIST_* environment variables and the changed flags in flags.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, fmt.Errorf("failed to read default config: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range map[string]string{"log_level": "log-level", "http.addr": "addr"} {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return Config{}, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// BootstrapAccounts converts the configured accounts into domain accounts,
// in configuration order.
func (c Config) BootstrapAccounts() ([]*domain.Account, error) {
	accounts := make([]*domain.Account, 0, len(c.Accounts))
	for _, ac := range c.Accounts {
		rate, err := decimal.NewFromString(ac.InterestRate)
		if err != nil {
			return nil, fmt.Errorf("invalid interest rate %q for %s: %w", ac.InterestRate, ac.Owner, err)
		}

		movements := make([]domain.Movement, 0, len(ac.Movements))
		for i, mc := range ac.Movements {
			amount, err := decimal.NewFromString(mc.Amount)
			if err != nil {
				return nil, fmt.Errorf("invalid amount %q in movement %d of %s: %w", mc.Amount, i+1, ac.Owner, err)
			}
			at, err := time.Parse(time.RFC3339, mc.Date)
			if err != nil {
				return nil, fmt.Errorf("invalid date %q in movement %d of %s: %w", mc.Date, i+1, ac.Owner, err)
			}
			movements = append(movements, domain.NewMovement(amount, at))
		}

		acc, err := domain.NewAccount(ac.Owner, ac.PIN, rate,
			shared.Currency(strings.ToUpper(ac.Currency)), shared.Locale(ac.Locale), movements)
		if err != nil {
			return nil, fmt.Errorf("invalid bootstrap account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}
