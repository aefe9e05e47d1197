package service

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"

	"github.com/erth-network/anml-cli/contracts"
	"github.com/erth-network/anml-cli/core/types"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	MnemonicField = "mnemonic"
	URLField      = "erth_url"
	ChainIDField  = "chain_id"
	WasmPathField = "wasm_path"
	GasPriceField = "gas_price"
	FeeDenomField = "fee_denom"
	LogLevelField = "log_level"
)

const (
	DefaultURL     = "https://lcd.erth.network"
	DefaultChainID = "secret-4"
	DefaultEnvFile = ".env"
)

type Config struct {
	Mnemonic string          `mapstructure:"mnemonic"`
	URL      string          `mapstructure:"erth_url"`
	ChainID  string          `mapstructure:"chain_id"`
	WasmPath string          `mapstructure:"wasm_path"`
	GasPrice decimal.Decimal `mapstructure:"gas_price"`
	FeeDenom string          `mapstructure:"fee_denom"`
	LogLevel string          `mapstructure:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		URL:      DefaultURL,
		ChainID:  DefaultChainID,
		WasmPath: contracts.DefaultWasmPath,
		GasPrice: types.DefaultGasPrice,
		FeeDenom: types.DefaultFeeDenom,
		LogLevel: "info",
	}
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.Mnemonic != "" {
		c.Mnemonic = "<redacted>"
	}
	return c
}

// LoadConfig reads envFile (dotenv syntax) and overlays the process environment on top.
// A missing file is an error only if mustExist is set.
func LoadConfig(envFile string, mustExist bool) (Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault(MnemonicField, "")
	v.SetDefault(URLField, defaults.URL)
	v.SetDefault(ChainIDField, defaults.ChainID)
	v.SetDefault(WasmPathField, defaults.WasmPath)
	v.SetDefault(GasPriceField, defaults.GasPrice.String())
	v.SetDefault(FeeDenomField, defaults.FeeDenom)
	v.SetDefault(LogLevelField, defaults.LogLevel)
	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			if mustExist || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("%w: failed to read %s: %w", ErrConfiguration, envFile, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, updateDecoderConfig); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if cfg.URL == "" {
		cfg.URL = defaults.URL
	}
	if cfg.ChainID == "" {
		cfg.ChainID = defaults.ChainID
	}
	return cfg, nil
}

func updateDecoderConfig(config *mapstructure.DecoderConfig) {
	config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		config.DecodeHook,
		decimalDecodeHook,
	)
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

func decimalDecodeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != decimalType {
		return data, nil
	}
	switch from.Kind() {
	case reflect.String:
		d, err := decimal.NewFromString(data.(string))
		if err != nil {
			return nil, fmt.Errorf("invalid decimal %q: %w", data, err)
		}
		return d, nil
	case reflect.Float64:
		return decimal.NewFromFloat(data.(float64)), nil
	default:
		return data, nil
	}
}
