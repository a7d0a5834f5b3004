package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"holdemtable-server/internal/util"
)

// Config provides configuration for the hold'em table server
type Config struct {
	loaded     bool
	ListenAddr string `yaml:"listenAddr" envconfig:"listen_addr"`
	Log        struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	JWT struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	StartingStack int  `yaml:"startingStack" envconfig:"starting_stack"`
	MinBet        int  `yaml:"minBet" envconfig:"min_bet"`
	SingleSession bool `yaml:"singleSession" envconfig:"single_session"`
}

var config Config

// DefaultConfig returns the configuration with every default filled in
func DefaultConfig() Config {
	cfg := Config{
		ListenAddr:    ":5000",
		StartingStack: 1000,
		MinBet:        20,
	}
	cfg.Log.Level = "info"
	cfg.JWT.PublicKey = "jwt/public.pem"
	cfg.JWT.PrivateKey = "jwt/private.key"

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
func Load() error {
	configFile := util.Getenv("HTS_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil {
		return err
	}
	defer file.Close()

	config = DefaultConfig()
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return err
	}

	if err := envconfig.Process("hts", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
