package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile_Valid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("schemas:\n  - MedCost\n  - SmokerMedCost\nformat: parquet\n"), 0644)

	var c Config
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if len(c.Schemas) != 2 {
		t.Fatalf("expected 2 schemas, got %d", len(c.Schemas))
	}
	if c.Schemas[0] != "MedCost" || c.Schemas[1] != "SmokerMedCost" {
		t.Errorf("unexpected schemas: %v", c.Schemas)
	}
	if c.Format != "parquet" {
		t.Errorf("format: got %q", c.Format)
	}
}

func TestLoadFromFile_FlagsWin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("schemas: [MedCost]\noutput: from-file.csv\n"), 0644)

	c := Config{Schemas: []string{"FemaleMedCost"}, OutputPath: "flag.csv"}
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if len(c.Schemas) != 1 || c.Schemas[0] != "FemaleMedCost" {
		t.Errorf("flag schemas should win, got %v", c.Schemas)
	}
	if c.OutputPath != "flag.csv" {
		t.Errorf("flag output should win, got %q", c.OutputPath)
	}
}

func TestLoadFromFile_UnknownSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("schemas:\n  - MedCost\n  - BOGUS\n"), 0644)

	var c Config
	err := c.LoadFromFile(path)
	if err == nil {
		t.Fatal("expected error for unknown schema")
	}
}

func TestLoadFromFile_EmptyDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("schemas: []\n"), 0644)

	var c Config
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if len(c.Schemas) != 3 {
		t.Errorf("expected 3 default schemas, got %d: %v", len(c.Schemas), c.Schemas)
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	var c Config
	err := c.LoadFromFile("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "data.csv")
	os.WriteFile(data, []byte("Id\n"), 0644)

	if err := (&Config{}).Validate(); err == nil {
		t.Error("expected error without --file")
	}

	c := Config{FilePath: data, OutputPath: "out.csv"}
	if err := c.Validate(); err == nil {
		t.Error("expected error for --out with every schema selected")
	}

	c = Config{FilePath: data, OutputPath: "out.csv", Schemas: []string{"FemaleMedCost"}}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if err := c.ValidateWithDSN(); err == nil {
		t.Error("expected error without DSN")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("MEDCOST_DB_URL", "postgres://localhost/medcost")
	t.Setenv("MEDCOST_LOG_FORMAT", "json")
	t.Setenv("MEDCOST_VERBOSE", "true")

	e, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if e.DSN != "postgres://localhost/medcost" || e.LogFormat != "json" || !e.Verbose {
		t.Errorf("unexpected env: %+v", e)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"MEDCOST_DB_URL", "MEDCOST_LOG_FORMAT", "MEDCOST_VERBOSE"} {
		t.Setenv(k, "") // restored on cleanup
		os.Unsetenv(k)
	}

	e, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if e.DSN != "" || e.LogFormat != "text" || e.Verbose {
		t.Errorf("unexpected env: %+v", e)
	}
}

func TestFromEnv_BadBool(t *testing.T) {
	t.Setenv("MEDCOST_VERBOSE", "maybe")
	if _, err := FromEnv(); err == nil {
		t.Error("expected error for unparseable MEDCOST_VERBOSE")
	}
}

func TestFromEnv_DotEnvFile(t *testing.T) {
	t.Setenv("MEDCOST_DB_URL", "") // restored on cleanup
	os.Unsetenv("MEDCOST_DB_URL")

	path := filepath.Join(t.TempDir(), ".env")
	os.WriteFile(path, []byte("MEDCOST_DB_URL=postgres://dotenv/medcost\n"), 0644)

	e, err := fromEnv(path)
	if err != nil {
		t.Fatalf("fromEnv: %v", err)
	}
	if e.DSN != "postgres://dotenv/medcost" {
		t.Errorf("DSN: got %q", e.DSN)
	}
}

func TestFromEnv_DotEnvAbsent(t *testing.T) {
	if _, err := fromEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("absent .env should be ignored, got %v", err)
	}
}

func TestFromEnv_DotEnvUnreadable(t *testing.T) {
	// A directory exists but cannot be parsed as a .env file.
	if _, err := fromEnv(t.TempDir()); err == nil {
		t.Error("expected error for unreadable .env")
	}
}
