package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/mkovel/pitchside/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file and no env overrides", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then the defaults apply", func() {
			So(cfg.Addr, ShouldEqual, ":9090")
			So(cfg.MaxTopLimit, ShouldEqual, 50)
			So(cfg.AllowedOrigins, ShouldResemble, []string{"*"})
		})
	})
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":8080\"\nlog_level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PITCHSIDE_CONFIG", path)

	Convey("Given a YAML config file", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then file values override defaults", func() {
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.LogLevel, ShouldEqual, "debug")
			So(cfg.MaxTopLimit, ShouldEqual, 50)
		})
	})
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":8080\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PITCHSIDE_CONFIG", path)
	t.Setenv("PITCHSIDE_ADDR", ":7070")

	Convey("Given both a file and an env override", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then the env value wins", func() {
			So(cfg.Addr, ShouldEqual, ":7070")
		})
	})
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("PITCHSIDE_CONFIG", "/nonexistent/config.yaml")

	Convey("Given a missing config file", t, func() {
		_, err := config.Load(context.Background())

		Convey("Then loading fails with the load sentinel", func() {
			So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
		})
	})
}

func TestLoadInvalidTopLimit(t *testing.T) {
	t.Setenv("PITCHSIDE_MAX_TOP_LIMIT", "0")

	Convey("Given a non-positive top limit", t, func() {
		_, err := config.Load(context.Background())

		Convey("Then validation rejects it", func() {
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
