package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Timezone != "UTC" {
		t.Fatalf("Timezone = %q, want UTC", cfg.Timezone)
	}
}

func TestLoadFromParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "timezone: America/New_York\nholidays:\n  - \"2026-01-01\"\n  - \"12-25\"\ndb_path: /tmp/p.db\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timezone != "America/New_York" {
		t.Fatalf("Timezone = %q", cfg.Timezone)
	}
	if len(cfg.Holidays) != 2 {
		t.Fatalf("Holidays = %v", cfg.Holidays)
	}
	if cfg.DBPath != "/tmp/p.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
}

func TestLoadFromBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timezone: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err == nil {
		t.Fatal("unparseable config should error")
	}
	if cfg.Timezone != "UTC" {
		t.Fatalf("broken config should fall back to defaults, got %q", cfg.Timezone)
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := Config{Timezone: "Mars/Olympus_Mons"}
	if loc := cfg.Location(); loc != time.UTC {
		t.Fatalf("bad zone should fall back to UTC, got %v", loc)
	}
}

func TestHolidayFunc(t *testing.T) {
	cfg := Config{Holidays: []string{"2026-01-01", "12-25", "junk"}}
	isHoliday := cfg.HolidayFunc()

	if !isHoliday(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("fixed holiday should match")
	}
	if isHoliday(time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("fixed holiday should not recur")
	}
	if !isHoliday(time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("recurring holiday should match every year")
	}
	if !isHoliday(time.Date(2031, time.December, 25, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("recurring holiday should match every year")
	}
	if isHoliday(time.Date(2024, time.December, 24, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("ordinary day should not match")
	}
}
