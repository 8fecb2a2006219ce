package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadRedemptionConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		viper.Reset()

		cfg := LoadRedemptionConfig()
		assert.Equal(t, 6, cfg.CodeLength)
		assert.Equal(t, DefaultCodeAlphabet, cfg.CodeAlphabet)
		assert.Equal(t, 5*time.Minute, cfg.CodeTimeout)
		assert.Equal(t, 50, cfg.MaxCodeAttempts)
		assert.Equal(t, time.Hour, cfg.RateLimitWindow)
	})

	t.Run("overrides", func(t *testing.T) {
		viper.Reset()
		viper.Set("redemption.code_length", 8)
		viper.Set("redemption.code_timeout", "90s")
		viper.Set("redemption.sweep_interval", 0)

		cfg := LoadRedemptionConfig()
		assert.Equal(t, 8, cfg.CodeLength)
		assert.Equal(t, 90*time.Second, cfg.CodeTimeout)
		assert.Equal(t, time.Duration(0), cfg.SweepInterval)
	})
}

func TestLoadAwardConfig(t *testing.T) {
	viper.Reset()
	viper.Set("awards.workout", 35)

	cfg := LoadAwardConfig()
	assert.Equal(t, int64(10), cfg.Attendance)
	assert.Equal(t, int64(35), cfg.Workout)
	assert.Equal(t, int64(100), cfg.Signup)
}
