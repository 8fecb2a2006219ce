package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DefaultCodeLength   = 6
	DefaultCodeTimeout  = 5 * time.Minute
)

type RedemptionConfig struct {
	CodeLength           int
	CodeAlphabet         string
	CodeTimeout          time.Duration
	MaxCodeAttempts      int
	MaxRequestsPerMember int
	RateLimitWindow      time.Duration
	SweepInterval        time.Duration
	SpendDescription     string
}

type AwardConfig struct {
	Attendance int64
	Workout    int64
	Signup     int64
}

func LoadRedemptionConfig() *RedemptionConfig {
	viper.SetDefault("redemption.code_length", DefaultCodeLength)
	viper.SetDefault("redemption.code_alphabet", DefaultCodeAlphabet)
	viper.SetDefault("redemption.code_timeout", DefaultCodeTimeout)
	viper.SetDefault("redemption.max_code_attempts", 50)
	viper.SetDefault("redemption.max_requests_per_member", 10)
	viper.SetDefault("redemption.rate_limit_window", time.Hour)
	viper.SetDefault("redemption.sweep_interval", time.Minute)
	viper.SetDefault("redemption.spend_description", "Points redeemed at front desk")

	return &RedemptionConfig{
		CodeLength:           viper.GetInt("redemption.code_length"),
		CodeAlphabet:         viper.GetString("redemption.code_alphabet"),
		CodeTimeout:          viper.GetDuration("redemption.code_timeout"),
		MaxCodeAttempts:      viper.GetInt("redemption.max_code_attempts"),
		MaxRequestsPerMember: viper.GetInt("redemption.max_requests_per_member"),
		RateLimitWindow:      viper.GetDuration("redemption.rate_limit_window"),
		SweepInterval:        viper.GetDuration("redemption.sweep_interval"),
		SpendDescription:     viper.GetString("redemption.spend_description"),
	}
}

func LoadAwardConfig() *AwardConfig {
	viper.SetDefault("awards.attendance", 10)
	viper.SetDefault("awards.workout", 20)
	viper.SetDefault("awards.signup", 100)

	return &AwardConfig{
		Attendance: viper.GetInt64("awards.attendance"),
		Workout:    viper.GetInt64("awards.workout"),
		Signup:     viper.GetInt64("awards.signup"),
	}
}
