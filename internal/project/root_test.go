package project

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "jshint.toml"), "asi = true\n")
	deep := filepath.Join(root, "src", "lib")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := FindConfig(deep)
	if err != nil || !ok {
		t.Fatalf("FindConfig: ok=%v err=%v", ok, err)
	}
	if path != filepath.Join(root, "jshint.toml") {
		t.Fatalf("path = %s", path)
	}
	dir, ok, err := FindProjectRoot(deep)
	if err != nil || !ok || dir != root {
		t.Fatalf("FindProjectRoot = %s %v %v", dir, ok, err)
	}
}

func TestFindConfigPrefersNearestAndOrder(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, ".jshintrc"), `{"asi": true}`)
	sub := filepath.Join(root, "sub")
	write(t, filepath.Join(sub, ".jshint.yml"), "curly: false\n")
	write(t, filepath.Join(sub, "jshint.toml"), "curly = true\n")

	path, ok, err := FindConfig(sub)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if filepath.Base(path) != "jshint.toml" {
		t.Fatalf("expected jshint.toml to win over .jshint.yml, got %s", path)
	}
}

func TestLoadConfig(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, ".jshintrc"), "{\n  // comment\n  \"asi\": true,\n  \"predef\": [\"jQuery\"]\n}\n")

	cfg, err := LoadConfig(root, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != filepath.Join(root, ".jshintrc") {
		t.Fatalf("path = %s", cfg.Path)
	}
	if cfg.Options["asi"] != true {
		t.Fatalf("asi = %v", cfg.Options["asi"])
	}

	explicit := filepath.Join(root, "other.yaml")
	write(t, explicit, "linter: jslint\nwhite: true\n")
	cfg, err = LoadConfig(root, explicit)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Options["linter"] != "jslint" || cfg.Options["white"] != true {
		t.Fatalf("explicit config not used: %v", cfg.Options)
	}

	if _, err := LoadConfig(root, filepath.Join(root, "missing.toml")); err == nil {
		t.Fatal("missing explicit config must fail")
	}
}

func TestLoadConfigNone(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" || len(cfg.Options) != 0 {
		t.Fatalf("unexpected %+v", cfg)
	}
}
