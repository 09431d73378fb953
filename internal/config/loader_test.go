package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/nuclea/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"NUCLEA_CONFIG", "NUCLEA_ADDR", "NUCLEA_PERSISTENCE", "NUCLEA_LLM_PROVIDER",
	"NUCLEA_LLM_MODEL", "NUCLEA_LLM_API_KEY", "NUCLEA_LLM_TIMEOUT_MS",
	"NUCLEA_LLM_TEMPERATURE", "NUCLEA_ANALYZE_TIMEOUT_SEC", "NUCLEA_LLM_LOG_CALLS",
}

func clearConfigEnvVars() {
	for _, k := range configEnvVars {
		_ = os.Unsetenv(k)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "nuclea.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then the defaults are returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LLMProvider, convey.ShouldEqual, "ollama")
			})
		})

		convey.Convey("When loading with environment variables", func() {
			_ = os.Setenv("NUCLEA_ADDR", ":9999")
			_ = os.Setenv("NUCLEA_LLM_PROVIDER", "openai")
			_ = os.Setenv("NUCLEA_LLM_API_KEY", "sk-test")
			_ = os.Setenv("NUCLEA_LLM_TIMEOUT_MS", "45000")
			_ = os.Setenv("NUCLEA_LLM_TEMPERATURE", "0.7")
			_ = os.Setenv("NUCLEA_LLM_LOG_CALLS", "true")

			cfg, err := config.Load(ctx)

			convey.Convey("Then env vars override defaults with typed values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9999")
				convey.So(cfg.LLMTimeoutMs, convey.ShouldEqual, 45000)
				convey.So(cfg.LLMTemperature, convey.ShouldEqual, 0.7)
				convey.So(cfg.LLMLogCalls, convey.ShouldBeTrue)
				convey.So(cfg.LLM().Model, convey.ShouldEqual, "gpt-4o-mini")
				convey.So(cfg.LLM().APIKey, convey.ShouldEqual, "sk-test")
			})
		})

		convey.Convey("When loading with a YAML file", func() {
			path := writeConfigFile(t, `
addr: ":7070"
persistence: none
llm_provider: demo
analyze_timeout_sec: 90
`)
			_ = os.Setenv("NUCLEA_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.Persistence, convey.ShouldEqual, config.PersistenceNone)
				convey.So(cfg.LLMProvider, convey.ShouldEqual, "demo")
				convey.So(cfg.AnalyzeTimeoutSec, convey.ShouldEqual, 90)
				convey.So(cfg.LLMMaxTokens, convey.ShouldEqual, 2000)
			})
		})

		convey.Convey("When both file and environment set a key", func() {
			path := writeConfigFile(t, "addr: \":7070\"\nllm_model: from-file\n")
			_ = os.Setenv("NUCLEA_CONFIG", path)
			_ = os.Setenv("NUCLEA_LLM_MODEL", "from-env")

			cfg, err := config.Load(ctx)

			convey.Convey("Then the environment wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.LLMModel, convey.ShouldEqual, "from-env")
			})
		})

		convey.Convey("When the YAML file is invalid", func() {
			_ = os.Setenv("NUCLEA_CONFIG", writeConfigFile(t, `invalid: yaml: content: [`))

			cfg, err := config.Load(ctx)

			convey.Convey("Then a load error is returned", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the file does not exist", func() {
			_ = os.Setenv("NUCLEA_CONFIG", "/non/existent/nuclea.yaml")

			cfg, err := config.Load(ctx)
			convey.So(cfg, convey.ShouldBeNil)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When a loaded value is invalid", func() {
			_ = os.Setenv("NUCLEA_PERSISTENCE", "postgres")

			cfg, err := config.Load(ctx)
			convey.So(cfg, convey.ShouldBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
