package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Set up test environment variables
	os.Setenv("botToken", "test-token")
	os.Setenv("PORT", "3001")
	os.Setenv("enviroment", "test")
	os.Setenv("maxWarnings", "3")
	defer func() {
		os.Unsetenv("botToken")
		os.Unsetenv("PORT")
		os.Unsetenv("enviroment")
		os.Unsetenv("maxWarnings")
	}()

	// Reset global config
	resetForTesting()

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if config.BotToken != "test-token" {
		t.Errorf("BotToken = %v, want %v", config.BotToken, "test-token")
	}

	if config.Port != "3001" {
		t.Errorf("Port = %v, want %v", config.Port, "3001")
	}

	if config.Environment != "test" {
		t.Errorf("Environment = %v, want %v", config.Environment, "test")
	}

	if config.MaxWarnings != 3 {
		t.Errorf("MaxWarnings = %v, want %v", config.MaxWarnings, 3)
	}
}

func TestLoadMissingToken(t *testing.T) {
	os.Unsetenv("botToken")
	resetForTesting()

	if _, err := Load(); err == nil {
		t.Error("Load() should fail when botToken is missing")
	}
}

func TestModerationDefaults(t *testing.T) {
	os.Setenv("botToken", "test-token")
	defer os.Unsetenv("botToken")
	resetForTesting()

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if config.ModLogChannel != "mod-logs" {
		t.Errorf("ModLogChannel = %v, want %v", config.ModLogChannel, "mod-logs")
	}
	if config.MaxWarnings != 5 {
		t.Errorf("MaxWarnings = %v, want %v", config.MaxWarnings, 5)
	}
	if config.MuteDuration != 300 {
		t.Errorf("MuteDuration = %v, want %v", config.MuteDuration, 300)
	}
	if config.SpamLimit != 5 {
		t.Errorf("SpamLimit = %v, want %v", config.SpamLimit, 5)
	}
	if config.SpamWindow != 7 {
		t.Errorf("SpamWindow = %v, want %v", config.SpamWindow, 7)
	}
	if config.BotDeleteTime != 5 {
		t.Errorf("BotDeleteTime = %v, want %v", config.BotDeleteTime, 5)
	}
	if config.AIEnabled() {
		t.Error("AIEnabled() should be false without openaiApiKey")
	}
}

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	if got := getEnv("TEST_VAR", "default"); got != "test-value" {
		t.Errorf("getEnv() = %v, want %v", got, "test-value")
	}

	if got := getEnv("NON_EXISTENT_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %v, want %v", got, "default")
	}
}

func TestGetEnvInt(t *testing.T) {
	os.Setenv("TEST_INT", "42")
	os.Setenv("TEST_BAD_INT", "not-a-number")
	defer func() {
		os.Unsetenv("TEST_INT")
		os.Unsetenv("TEST_BAD_INT")
	}()

	if got := getEnvInt("TEST_INT", 7); got != 42 {
		t.Errorf("getEnvInt() = %v, want %v", got, 42)
	}

	if got := getEnvInt("TEST_BAD_INT", 7); got != 7 {
		t.Errorf("getEnvInt() = %v, want %v", got, 7)
	}

	if got := getEnvInt("NON_EXISTENT_INT", 7); got != 7 {
		t.Errorf("getEnvInt() = %v, want %v", got, 7)
	}
}

func TestIsProd(t *testing.T) {
	resetForTesting()
	os.Setenv("botToken", "test-token")
	os.Setenv("enviroment", "prod")
	defer func() {
		os.Unsetenv("botToken")
		os.Unsetenv("enviroment")
	}()

	config, _ := Load()
	if !config.IsProd() {
		t.Error("IsProd() should return true when environment is 'prod'")
	}

	resetForTesting()
	os.Setenv("enviroment", "dev")
	config, _ = Load()

	if config.IsProd() {
		t.Error("IsProd() should return false when environment is not 'prod'")
	}
}
