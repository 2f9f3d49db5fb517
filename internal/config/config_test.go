package config

import (
	"os"
	"strings"
	"testing"
)

func TestGetEnvWithDefault(t *testing.T) {
	testCases := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		expected     string
	}{
		{
			name:         "should return env value when set",
			key:          "TEST_KEY",
			defaultValue: "default",
			envValue:     "from_env",
			expected:     "from_env",
		},
		{
			name:         "should return default when env not set",
			key:          "MISSING_KEY",
			defaultValue: "default_value",
			envValue:     "",
			expected:     "default_value",
		},
		{
			name:         "should return empty string default",
			key:          "EMPTY_KEY",
			defaultValue: "",
			envValue:     "",
			expected:     "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			} else {
				os.Unsetenv(tt.key)
			}

			result := GetEnvWithDefault(tt.key, tt.defaultValue)

			if result != tt.expected {
				t.Errorf("GetEnvWithDefault() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	setTestEnv := func() {
		os.Setenv("APP_PORT", "9000")
		os.Setenv("APP_HOST", "0.0.0.0")
		os.Setenv("DB_DRIVER", "postgres")
		os.Setenv("LOG_LEVEL", "debug")
		os.Setenv("JWT_SECRET", "super_secret_jwt_key")
	}

	cleanupTestEnv := func() {
		vars := []string{
			"APP_PORT", "APP_HOST", "DB_DRIVER", "LOG_LEVEL", "JWT_SECRET",
		}
		for _, v := range vars {
			os.Unsetenv(v)
		}
	}

	t.Run("successful config load with all env vars", func(t *testing.T) {
		setTestEnv()
		defer cleanupTestEnv()

		config, err := LoadConfig()

		if err != nil {
			t.Fatalf("LoadConfig() returned error: %v", err)
		}

		if config.Port != 9000 {
			t.Errorf("Port = %d, expected 9000", config.Port)
		}
		if config.Host != "0.0.0.0" {
			t.Errorf("Host = %s, expected 0.0.0.0", config.Host)
		}
		if config.DBDriver != "postgres" {
			t.Errorf("DBDriver = %s, expected postgres", config.DBDriver)
		}
		if config.LogLevel != "debug" {
			t.Errorf("LogLevel = %s, expected debug", config.LogLevel)
		}
	})

	t.Run("should fail with invalid port", func(t *testing.T) {
		cleanupTestEnv()
		os.Setenv("APP_PORT", "not_a_number")
		defer cleanupTestEnv()

		config, err := LoadConfig()

		if err == nil {
			t.Error("LoadConfig() should return error when APP_PORT is invalid")
		}
		if config != nil {
			t.Error("Config should be nil when error occurs")
		}
	})

	t.Run("should use defaults when optional env vars not set", func(t *testing.T) {
		cleanupTestEnv()
		defer cleanupTestEnv()

		config, err := LoadConfig()

		if err != nil {
			t.Fatalf("LoadConfig() returned unexpected error: %v", err)
		}

		if config.Port != 8080 {
			t.Errorf("Port = %d, expected default 8080", config.Port)
		}
		if config.Host != "localhost" {
			t.Errorf("Host = %s, expected default localhost", config.Host)
		}
		if config.DBDriver != "sqlite" {
			t.Errorf("DBDriver = %s, expected default sqlite", config.DBDriver)
		}
		if config.LogLevel != "info" {
			t.Errorf("LogLevel = %s, expected default info", config.LogLevel)
		}
	})

	t.Run("masked string representation hides secrets", func(t *testing.T) {
		cleanupTestEnv()
		os.Setenv("DB_PASSWORD", "hunter2")
		os.Setenv("JWT_SECRET", "topsecret")
		defer func() {
			os.Unsetenv("DB_PASSWORD")
			cleanupTestEnv()
		}()

		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig() returned error: %v", err)
		}

		s := config.String()
		for _, secret := range []string{"hunter2", "topsecret"} {
			if strings.Contains(s, secret) {
				t.Errorf("String() leaked secret %q", secret)
			}
		}
	})
}

func BenchmarkGetEnvWithDefault(b *testing.B) {
	os.Setenv("BENCH_KEY", "test_value")
	defer os.Unsetenv("BENCH_KEY")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GetEnvWithDefault("BENCH_KEY", "default")
	}
}
