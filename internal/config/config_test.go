package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstance(t *testing.T) {
	clear1 := setEnv("HTS_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := setEnv("HTS_JWT_PRIVATE_KEY", "private2.key")
	defer clear2()

	a := assert.New(t)
	cfg := Instance()
	a.Equal(":5000", cfg.ListenAddr)
	a.Equal("debug", cfg.Log.Level)
	a.Equal("public.pem", cfg.JWT.PublicKey)
	a.Equal("private2.key", cfg.JWT.PrivateKey)
	a.Equal(2000, cfg.StartingStack)
	a.Equal(50, cfg.MinBet)
	a.True(cfg.SingleSession)

	// ensure that it's only loaded once
	_ = os.Setenv("HTS_JWT_PRIVATE_KEY", "private3.key")
	// ensure we aren't using a pointer
	cfg.JWT.PrivateKey = "bad"
	cfg = Instance()
	a.Equal("private2.key", cfg.JWT.PrivateKey)
}

func TestDefaultConfig(t *testing.T) {
	a := assert.New(t)
	cfg := DefaultConfig()
	a.Equal(":5000", cfg.ListenAddr)
	a.Equal("info", cfg.Log.Level)
	a.Equal(1000, cfg.StartingStack)
	a.Equal(20, cfg.MinBet)
	a.False(cfg.SingleSession)
}

func setEnv(key, val string) func() {
	orig := os.Getenv(key)
	_ = os.Setenv(key, val)
	return func() {
		if orig == "" {
			_ = os.Unsetenv(key)
		} else {
			_ = os.Setenv(key, orig)
		}
	}
}
