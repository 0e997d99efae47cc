package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testConfigYAML = `
botName: Glance
largeImageWidth: 1500
strokeWidthRatio: 0.003
keepImages: false
downloadTimeout: 2500
ratioAsInt: 2
`

func TestParseConfig(t *testing.T) {
	config, err := ParseConfig([]byte(testConfigYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("strings", func(t *testing.T) {
		if got := config.GetString("botName"); got != "Glance" {
			t.Errorf("expected 'Glance', got '%s'", got)
		}
		if got := config.GetStringOrDefault("missing", "fallback"); got != "fallback" {
			t.Errorf("expected 'fallback', got '%s'", got)
		}
		if got := config.GetString("largeImageWidth"); got != "" {
			t.Errorf("expected an int value to be ignored, got '%s'", got)
		}
	})

	t.Run("numbers", func(t *testing.T) {
		if got := config.GetIntOrDefault("largeImageWidth", 0); got != 1500 {
			t.Errorf("expected 1500, got %d", got)
		}
		if got := config.GetFloatOrDefault("strokeWidthRatio", 0); got != 0.003 {
			t.Errorf("expected 0.003, got %v", got)
		}
		if got := config.GetFloatOrDefault("ratioAsInt", 0); got != 2 {
			t.Errorf("expected ints to be accepted as floats, got %v", got)
		}
		if got := config.GetIntOrDefault("botName", 7); got != 7 {
			t.Errorf("expected the default for a non-int value, got %d", got)
		}
	})

	t.Run("bools", func(t *testing.T) {
		if got := config.GetBoolOrDefault("keepImages", true); got {
			t.Error("expected keepImages to be false")
		}
		if got := config.GetBoolOrDefault("missing", true); !got {
			t.Error("expected the default value")
		}
	})

	t.Run("durations are milliseconds", func(t *testing.T) {
		if got := config.GetDurationOrDefault("downloadTimeout", time.Second); got != 2500*time.Millisecond {
			t.Errorf("expected 2.5s, got %v", got)
		}
		if got := config.GetDurationOrDefault("missing", time.Second); got != time.Second {
			t.Errorf("expected the default value, got %v", got)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfigYAML), 0644); err != nil {
		t.Fatal(err)
	}
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := config.GetString("botName"); got != "Glance" {
		t.Errorf("expected 'Glance', got '%s'", got)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestGetSecret(t *testing.T) {
	config := NewConfig(map[string]any{"ircPassword": "from-config"})
	t.Setenv("GLANCE_TEST_SECRET", "")
	if got := config.GetSecret("ircPassword", "GLANCE_TEST_SECRET"); got != "from-config" {
		t.Errorf("expected the config fallback, got '%s'", got)
	}
	t.Setenv("GLANCE_TEST_SECRET", "from-env")
	if got := config.GetSecret("ircPassword", "GLANCE_TEST_SECRET"); got != "from-env" {
		t.Errorf("expected the environment to win, got '%s'", got)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		if err := LoadEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("variables are loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("GLANCE_TEST_ENV_VALUE=hello\n"), 0644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("GLANCE_TEST_ENV_VALUE", "")
		if err := os.Unsetenv("GLANCE_TEST_ENV_VALUE"); err != nil {
			t.Fatal(err)
		}
		if err := LoadEnv(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := os.Getenv("GLANCE_TEST_ENV_VALUE"); got != "hello" {
			t.Errorf("expected 'hello', got '%s'", got)
		}
	})
}
