package config_test

import (
	"testing"

	"github.com/pagepulse/pagepulse/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConfigDefaults(t *testing.T) {
	Convey("Given a default config", t, func() {
		cfg := config.New()

		Convey("Then sampling defaults should match the pipeline contract", func() {
			So(cfg.RunCount, ShouldEqual, 3)
			So(cfg.PauseMS, ShouldEqual, 2000)
			So(cfg.KeepRaw, ShouldBeTrue)
		})

		Convey("Then storage and reporting defaults should be local paths", func() {
			So(cfg.Store, ShouldEqual, config.StoreFile)
			So(cfg.DataDir, ShouldEqual, "./data")
			So(cfg.ReportDir, ShouldEqual, "./reports")
			So(cfg.SQLitePath, ShouldEqual, "")
		})

		Convey("Then the scorer defaults to the PageSpeed client", func() {
			So(cfg.Scorer, ShouldEqual, config.ScorerPSI)
			So(cfg.PSIBaseURL, ShouldNotBeEmpty)
			So(cfg.PSITimeoutMS, ShouldBeGreaterThan, 0)
		})

		Convey("Then no URLs are configured out of the box", func() {
			So(cfg.URLs, ShouldBeEmpty)
		})
	})
}
