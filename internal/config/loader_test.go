package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/BerylCAtieno/yodelstar-api/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// setEnv sets key for the current Convey leaf and restores it afterwards.
func setEnv(key, value string) {
	prev, had := os.LookupEnv(key)
	_ = os.Setenv(key, value)
	convey.Reset(func() {
		if had {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":5002")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFile, convey.ShouldEqual, "api.log")
			convey.So(cfg.Model, convey.ShouldEqual, "gemini-2.5-pro")
			convey.So(cfg.StepsDir, convey.ShouldEqual, "steps")
			convey.So(cfg.GeminiConfigured(), convey.ShouldBeFalse)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		setEnv("GEMINI_API_KEY", "")
		setEnv("PORT", "")

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load("")

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":5002")
			convey.So(cfg.MaxOutputTokens, convey.ShouldEqual, 8192)
		})

		convey.Convey("When loading with environment variables", func() {
			setEnv("YODEL_ADDR", ":8080")
			setEnv("YODEL_MODEL", "gemini-2.5-flash")
			setEnv("YODEL_MAX_OUTPUT_TOKENS", "2048")
			setEnv("YODEL_TEMPERATURE", "0.2")

			cfg, err := config.Load("")

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.Model, convey.ShouldEqual, "gemini-2.5-flash")
			convey.So(cfg.MaxOutputTokens, convey.ShouldEqual, 2048)
			convey.So(cfg.Temperature, convey.ShouldAlmostEqual, 0.2)
		})

		convey.Convey("When loading from a YAML file", func() {
			path := writeConfigFile(t, `
addr: ":9090"
log_level: debug
steps_dir: /data/steps
`)
			cfg, err := config.Load(path)

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			convey.So(cfg.StepsDir, convey.ShouldEqual, "/data/steps")
			convey.So(cfg.Model, convey.ShouldEqual, "gemini-2.5-pro")
		})

		convey.Convey("When the file path comes from YODEL_CONFIG and env overrides it", func() {
			path := writeConfigFile(t, "addr: \":9090\"\nmodel: from-file\n")
			setEnv("YODEL_CONFIG", path)
			setEnv("YODEL_MODEL", "from-env")

			cfg, err := config.Load("")

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
			convey.So(cfg.Model, convey.ShouldEqual, "from-env")
		})

		convey.Convey("When the API key and port use their unprefixed names", func() {
			setEnv("GEMINI_API_KEY", "secret")
			setEnv("PORT", "7000")

			cfg, err := config.Load("")

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.GeminiAPIKey, convey.ShouldEqual, "secret")
			convey.So(cfg.GeminiConfigured(), convey.ShouldBeTrue)
			convey.So(cfg.Addr, convey.ShouldEqual, ":7000")
		})

		convey.Convey("When the file does not exist", func() {
			_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When a value is out of range", func() {
			setEnv("YODEL_TEMPERATURE", "3.5")

			_, err := config.Load("")

			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
