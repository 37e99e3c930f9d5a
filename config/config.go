// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	skipBucketCheck = pflag.Bool("skip-bucket-check", false, "Skips the startup HeadBucket probe against R2")
	validLogLevels  = []string{"debug", "info", "warn", "error", "fatal"}
)

// Setup prepares everything config-related so that the app can
// start working. The Redis address and the R2 credentials are
// both optional: leaving either unset runs the service in a
// degraded mode instead of failing startup.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.origin", "host_origin")

	v.BindEnv("cors.allowed_origins", "cors_allowed_origins")

	v.BindEnv("secrets.emails_api", "secrets_emails_api")

	v.BindEnv("redis.addr", "redis_addr")
	v.BindEnv("redis.password", "redis_password")
	v.BindEnv("redis.db", "redis_db")

	v.BindEnv("cloudflare.account_id", "cloudflare_account_id")
	v.BindEnv("cloudflare.access_key_id", "cloudflare_access_key_id")
	v.BindEnv("cloudflare.secret_access_key", "cloudflare_secret_access_key")
	v.BindEnv("cloudflare.bucket", "cloudflare_bucket")

	v.BindEnv("video.allowed_referrers", "video_allowed_referrers")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.origin", "https://vhs-ghost.com")

	v.SetDefault("cors.allowed_origins", []string{
		"https://vhs-ghost.com",
		"http://localhost:5000",
		"http://localhost:8787",
	})

	v.SetDefault("video.allowed_referrers", []string{
		"https://vhs-ghost.com",
		"https://vhs-ghost.takeatripbags.workers.dev",
		"http://localhost",
		"http://127.0.0.1",
	})

	v.SetDefault("redis.db", 0)

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional. Everything can come from
		// environment variables on an edge deployment.
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("host.origin") == "" {
		return errors.New("host.origin can't be empty")
	}

	if v.GetString("secrets.emails_api") == "" {
		fmt.Println("[WARNING]: No emails API secret set. The /api/emails diagnostic endpoint will reject every request")
	}

	if v.GetString("redis.addr") == "" {
		fmt.Println("[WARNING]: No Redis address set. User lookups fall back to demo records, email submissions won't be persisted and rate limiting is disabled")
	}

	// R2 is all-or-nothing: a partially filled credential block is
	// a misconfiguration, a fully empty one is a feature flag.
	if R2Configured() {
		if v.GetString("cloudflare.account_id") == "" {
			return errors.New("account id can't be empty")
		}
		if v.GetString("cloudflare.access_key_id") == "" {
			return errors.New("account access id can't be empty")
		}
		if v.GetString("cloudflare.secret_access_key") == "" {
			return errors.New("secret access key can't be empty")
		}
		if v.GetString("cloudflare.bucket") == "" {
			return errors.New("bucket can't be empty")
		}
	} else {
		zap.L().Warn("No R2 bucket configured. Chunk listings will be empty and video serving disabled")
	}

	return nil
}

// R2Configured reports whether any part of the R2 credential block
// is present. Setup validates that it is then complete.
func R2Configured() bool {
	return v.GetString("cloudflare.account_id") != "" ||
		v.GetString("cloudflare.access_key_id") != "" ||
		v.GetString("cloudflare.secret_access_key") != "" ||
		v.GetString("cloudflare.bucket") != ""
}

// SkipBucketCheck reports whether the startup bucket probe was
// disabled on the command line.
func SkipBucketCheck() bool {
	return *skipBucketCheck
}
