package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pagepulse/pagepulse/internal/config"
	"github.com/smartystreets/goconvey/convey"
	"gopkg.in/yaml.v3"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading with no URLs configured", func() {
			_, err := config.Load(ctx, "")

			convey.Convey("Then it should fail with ErrNoURLs", func() {
				convey.So(errors.Is(err, config.ErrNoURLs), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config from a YAML file", func() {
			path := writeConfigFile(t, map[string]any{
				"urls":      []string{"https://example.com/", "https://example.org/"},
				"run_count": 5,
				"pause_ms":  500,
				"store":     "sqlite",
				"data_dir":  "/tmp/pp-data",
				"scorer":    "static",
			})

			cfg, err := config.Load(ctx, path)

			convey.Convey("Then file values should override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.URLs, convey.ShouldResemble, []string{"https://example.com/", "https://example.org/"})
				convey.So(cfg.RunCount, convey.ShouldEqual, 5)
				convey.So(cfg.PauseMS, convey.ShouldEqual, 500)
				convey.So(cfg.Store, convey.ShouldEqual, config.StoreSQLite)
				convey.So(cfg.DataDir, convey.ShouldEqual, "/tmp/pp-data")
				convey.So(cfg.Scorer, convey.ShouldEqual, config.ScorerStatic)
			})

			convey.Convey("And untouched fields should keep their defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.ReportDir, convey.ShouldEqual, "./reports")
				convey.So(cfg.KeepRaw, convey.ShouldBeTrue)
				convey.So(cfg.LighthouseBin, convey.ShouldEqual, "lighthouse")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PAGEPULSE_URLS", "https://example.com/, https://example.net/")
			_ = os.Setenv("PAGEPULSE_RUN_COUNT", "2")
			_ = os.Setenv("PAGEPULSE_SCORER", "cli")
			_ = os.Setenv("PAGEPULSE_LIGHTHOUSE_BIN", "/usr/local/bin/lighthouse")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then env vars should override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.URLs, convey.ShouldResemble, []string{"https://example.com/", "https://example.net/"})
				convey.So(cfg.RunCount, convey.ShouldEqual, 2)
				convey.So(cfg.Scorer, convey.ShouldEqual, config.ScorerCLI)
				convey.So(cfg.LighthouseBin, convey.ShouldEqual, "/usr/local/bin/lighthouse")
			})
		})

		convey.Convey("When the URL list contains duplicates and blanks", func() {
			path := writeConfigFile(t, map[string]any{
				"urls": []string{"https://example.com/", "", "https://example.org/", "https://example.com/"},
			})

			cfg, err := config.Load(ctx, path)

			convey.Convey("Then the list should be de-duplicated preserving order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.URLs, convey.ShouldResemble, []string{"https://example.com/", "https://example.org/"})
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_, err := config.Load(ctx, filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then it should fail with ErrLoadConfig", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When validation rejects bad values", func() {
			convey.Convey("And run_count is zero", func() {
				path := writeConfigFile(t, map[string]any{
					"urls":      []string{"https://example.com/"},
					"run_count": 0,
				})
				_, err := config.Load(ctx, path)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})

			convey.Convey("And the store backend is unknown", func() {
				path := writeConfigFile(t, map[string]any{
					"urls":  []string{"https://example.com/"},
					"store": "redis",
				})
				_, err := config.Load(ctx, path)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})

			convey.Convey("And the scorer is unknown", func() {
				path := writeConfigFile(t, map[string]any{
					"urls":   []string{"https://example.com/"},
					"scorer": "webdriver",
				})
				_, err := config.Load(ctx, path)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

// writeConfigFile marshals the given document to a temp YAML file.
func writeConfigFile(t *testing.T, doc map[string]any) string {
	t.Helper()
	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal config fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "pagepulse.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config fixture: %v", err)
	}
	return path
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"PAGEPULSE_CONFIG",
		"PAGEPULSE_URLS",
		"PAGEPULSE_RUN_COUNT",
		"PAGEPULSE_PAUSE_MS",
		"PAGEPULSE_STORE",
		"PAGEPULSE_DATA_DIR",
		"PAGEPULSE_REPORT_DIR",
		"PAGEPULSE_SCORER",
		"PAGEPULSE_LIGHTHOUSE_BIN",
		"PAGEPULSE_METRICS_ADDR",
	} {
		_ = os.Unsetenv(key)
	}
}
