// Package config defines process configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, optional YAML file, and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

// Store backend names accepted by the "store" key.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Scorer implementation names accepted by the "scorer" key.
const (
	ScorerPSI    = "psi"
	ScorerCLI    = "cli"
	ScorerStatic = "static"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// URLs is the ordered set of pages to measure.
	URLs []string `koanf:"urls"`

	// RunCount is the number of scorer runs averaged per URL.
	RunCount int `koanf:"run_count"`

	// PauseMS is the pause between consecutive scorer runs for one URL.
	PauseMS int `koanf:"pause_ms"`

	// Store selects the snapshot store backend: file or sqlite.
	Store string `koanf:"store"`

	// DataDir is the root directory for the file store.
	DataDir string `koanf:"data_dir"`

	// SQLitePath overrides the sqlite database location.
	// Empty means <data_dir>/pagepulse.db.
	SQLitePath string `koanf:"sqlite_path"`

	// ReportDir is where rendered reports are written.
	ReportDir string `koanf:"report_dir"`

	// KeepRaw retains the raw per-run samples inside persisted snapshots.
	KeepRaw bool `koanf:"keep_raw"`

	// Scorer selects the scorer implementation: psi, cli, or static.
	Scorer string `koanf:"scorer"`

	// PSIBaseURL is the PageSpeed-style endpoint used by the psi scorer.
	PSIBaseURL string `koanf:"psi_base_url"`

	// PSIAPIKey is passed as the key query parameter when set.
	PSIAPIKey string `koanf:"psi_api_key"`

	// PSITimeoutMS bounds one psi scorer request.
	PSITimeoutMS int `koanf:"psi_timeout_ms"`

	// LighthouseBin is the executable invoked by the cli scorer.
	LighthouseBin string `koanf:"lighthouse_bin"`

	// MetricsAddr enables the Prometheus endpoint when non-empty, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		RunCount:      3,
		PauseMS:       2000,
		Store:         StoreFile,
		DataDir:       "./data",
		ReportDir:     "./reports",
		KeepRaw:       true,
		Scorer:        ScorerPSI,
		PSIBaseURL:    "https://www.googleapis.com/pagespeedonline/v5",
		PSITimeoutMS:  60_000,
		LighthouseBin: "lighthouse",
	}
}
