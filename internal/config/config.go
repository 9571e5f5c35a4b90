package config

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"github.com/spf13/viper"
	"os"
	"strings"
	"time"
)

const EnvPrefix = "TKSCHOOL"

type Config struct {
	Env          string
	LogLevel     string
	HTTPAddr     string
	AllowOrigins []string

	StoreDriver              string
	PostgresDSN              string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	RedisAddr                string
	RedisTTL                 time.Duration
	SchoolCollection         string
	VendorCollection         string

	Vendors       domain.VendorTable
	UnitSuffix    string
	SupplyPolicy  domain.SupplyPolicy
	SecretKey     string
	ImportWorkers int
}

func (c *Config) Development() bool {
	return c.Env != "prod"
}

func setDefaults() {
	viper.SetDefault(constants.ViperEnvKey, "dev")
	viper.SetDefault(constants.ViperLogLevelKey, "info")
	viper.SetDefault(constants.ViperHTTPAddrKey, ":8080")
	viper.SetDefault(constants.ViperAllowOriginsKey, []string{"*"})
	viper.SetDefault(constants.ViperStoreDriverKey, constants.StoreDriverMemory)
	viper.SetDefault(constants.ViperRedisTTLKey, 5*time.Minute)
	viper.SetDefault(constants.ViperSchoolCollKey, "school")
	viper.SetDefault(constants.ViperVendorCollKey, "vendor")
	viper.SetDefault(constants.ViperVendorPriorityKey, []string{"이가에프엔비", "에스에이치유통"})
	viper.SetDefault(constants.ViperVendorColorsKey, map[string]string{
		"이가에프엔비":  "#000000",
		"에스에이치유통": "#1900ff",
	})
	viper.SetDefault(constants.ViperVendorDefColorKey, "#111827")
	viper.SetDefault(constants.ViperUnitSuffixKey, "kg")
	viper.SetDefault(constants.ViperSupplyAmountKey, string(domain.SupplyStored))
	viper.SetDefault(constants.ViperImportWorkersKey, 4)
}

// Init resets the global viper instance and loads, in increasing priority,
// defaults, the optional config file, a .env file in the working directory and
// TKSCHOOL_* environment variables.
func Init(configFile string) error {
	viper.Reset()
	setDefaults()

	// load .env if it exists (ignore if it does not)
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("config.godotenv: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("config.os.Stat(.env): %w", err)
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("config.ReadInConfig: %w", err)
		}
	}

	return nil
}

// Load snapshots the global viper values.
func Load() (*Config, error) {
	cfg := &Config{
		Env:          strings.ToLower(viper.GetString(constants.ViperEnvKey)),
		LogLevel:     viper.GetString(constants.ViperLogLevelKey),
		HTTPAddr:     viper.GetString(constants.ViperHTTPAddrKey),
		AllowOrigins: viper.GetStringSlice(constants.ViperAllowOriginsKey),

		StoreDriver:              viper.GetString(constants.ViperStoreDriverKey),
		PostgresDSN:              viper.GetString(constants.ViperPostgresDSNKey),
		FirestoreProjectID:       viper.GetString(constants.ViperFirestoreProjectKey),
		FirestoreCredentialsFile: viper.GetString(constants.ViperFirestoreCredsKey),
		RedisAddr:                viper.GetString(constants.ViperRedisAddrKey),
		RedisTTL:                 viper.GetDuration(constants.ViperRedisTTLKey),
		SchoolCollection:         viper.GetString(constants.ViperSchoolCollKey),
		VendorCollection:         viper.GetString(constants.ViperVendorCollKey),

		Vendors: domain.VendorTable{
			Priority:     viper.GetStringSlice(constants.ViperVendorPriorityKey),
			Colors:       viper.GetStringMapString(constants.ViperVendorColorsKey),
			DefaultColor: viper.GetString(constants.ViperVendorDefColorKey),
		},
		UnitSuffix:    viper.GetString(constants.ViperUnitSuffixKey),
		SupplyPolicy:  domain.ParseSupplyPolicy(viper.GetString(constants.ViperSupplyAmountKey)),
		SecretKey:     viper.GetString(constants.ViperSecretKey),
		ImportWorkers: viper.GetInt(constants.ViperImportWorkersKey),
	}

	switch cfg.StoreDriver {
	case constants.StoreDriverMemory, constants.StoreDriverPostgres, constants.StoreDriverFirestore:
	default:
		return nil, fmt.Errorf("config.Load %q: %w", cfg.StoreDriver, constants.ErrUnknownDriver)
	}
	if cfg.ImportWorkers < 1 {
		cfg.ImportWorkers = 1
	}

	return cfg, nil
}
