package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	c := Load()
	c.OsuClientID = "12345"
	c.OsuClientSecret = "secret"
	c.OsuAPIV1Key = "v1key"
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := Load()

	if c.DBPath != "mapmirror.db" {
		t.Errorf("Expected default DB path 'mapmirror.db', got %q", c.DBPath)
	}
	if c.StorageDir != "storage" {
		t.Errorf("Expected default storage dir 'storage', got %q", c.StorageDir)
	}
	if c.StatusPort != "8585" {
		t.Errorf("Expected default status port '8585', got %q", c.StatusPort)
	}
	if c.TrackAllMaps {
		t.Error("Expected track-all off by default")
	}
	if c.LogLevel != "info" || c.LogFormat != "text" {
		t.Errorf("Unexpected log defaults: %q %q", c.LogLevel, c.LogFormat)
	}

	if c.Auth.Normal != 120*time.Minute || c.Auth.OnError != 1*time.Minute {
		t.Errorf("Unexpected auth intervals: %+v", c.Auth)
	}
	if c.Fetch.Normal != 1*time.Minute || c.Fetch.OnError != 10*time.Minute {
		t.Errorf("Unexpected fetch intervals: %+v", c.Fetch)
	}
	if c.Missing.Normal != 1440*time.Minute || c.Missing.OnError != 60*time.Minute {
		t.Errorf("Unexpected missing intervals: %+v", c.Missing)
	}
}

func TestIntervalOverrides(t *testing.T) {
	t.Setenv("FETCH_INTERVAL", "5")
	t.Setenv("FETCH_ERROR_INTERVAL", "30")

	c := Load()
	if c.Fetch.Normal != 5*time.Minute {
		t.Errorf("Expected 5m fetch interval, got %v", c.Fetch.Normal)
	}
	if c.Fetch.OnError != 30*time.Minute {
		t.Errorf("Expected 30m fetch error interval, got %v", c.Fetch.OnError)
	}
}

func TestBoolAndBadIntFallBack(t *testing.T) {
	t.Setenv("TRACK_ALL_MAPS", "true")
	t.Setenv("STATS_INTERVAL", "not-a-number")

	c := Load()
	if !c.TrackAllMaps {
		t.Error("Expected TRACK_ALL_MAPS=true to be honored")
	}
	if c.Stats.Normal != 5*time.Minute {
		t.Errorf("Expected fallback stats interval, got %v", c.Stats.Normal)
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Expected valid config to pass, got: %v", err)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	c := validConfig()
	c.OsuClientID = ""
	c.OsuClientSecret = ""
	c.StatusPort = "99999"
	c.LogLevel = "loud"

	err := c.Validate()
	if err == nil {
		t.Fatal("Expected validation to fail")
	}
	for _, want := range []string{
		"OSU_API_CLIENT_ID",
		"OSU_API_CLIENT_SECRET",
		"STATUS_PORT",
		"LOG_LEVEL",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error to mention %s, got: %v", want, err)
		}
	}
}

func TestValidateRejectsNonNumericClientID(t *testing.T) {
	c := validConfig()
	c.OsuClientID = "not-numeric"

	err := c.Validate()
	if err == nil || !strings.Contains(err.Error(), "must be numeric") {
		t.Errorf("Expected numeric client ID error, got: %v", err)
	}
}

func TestValidateRejectsNonPositiveIntervals(t *testing.T) {
	c := validConfig()
	c.Recent.Normal = 0

	err := c.Validate()
	if err == nil || !strings.Contains(err.Error(), "RECENT_INTERVAL") {
		t.Errorf("Expected RECENT_INTERVAL error, got: %v", err)
	}
}
