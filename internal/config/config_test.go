package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad_DefaultWhenMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := DefaultConfig()
	if cfg.AutoTagLimit != want.AutoTagLimit || cfg.SuggestTagLimit != want.SuggestTagLimit ||
		cfg.InlineSuggestLimit != want.InlineSuggestLimit || cfg.PreviewTimeoutMS != want.PreviewTimeoutMS {
		t.Fatalf("Load() = %+v, want defaults %+v", cfg, want)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
}

func TestDefaultConfig_Limits(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.AutoTagLimit != 1 {
		t.Errorf("AutoTagLimit = %d, want 1", cfg.AutoTagLimit)
	}
	if cfg.SuggestTagLimit != 2 {
		t.Errorf("SuggestTagLimit = %d, want 2", cfg.SuggestTagLimit)
	}
	if cfg.InlineSuggestLimit != 1 {
		t.Errorf("InlineSuggestLimit = %d, want 1", cfg.InlineSuggestLimit)
	}
	if cfg.PreviewTimeout() != 3*time.Second {
		t.Errorf("PreviewTimeout() = %v, want 3s", cfg.PreviewTimeout())
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"auto_tag_limit": 3, "preview_timeout_ms": 500, "disable_preview_fetch": true, "log_level": "debug"}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AutoTagLimit != 3 {
		t.Errorf("AutoTagLimit = %d, want 3", cfg.AutoTagLimit)
	}
	if cfg.SuggestTagLimit != 2 {
		t.Errorf("SuggestTagLimit = %d, want 2 (default)", cfg.SuggestTagLimit)
	}
	if cfg.PreviewTimeout() != 500*time.Millisecond {
		t.Errorf("PreviewTimeout() = %v, want 500ms", cfg.PreviewTimeout())
	}
	if !cfg.DisablePreviewFetch {
		t.Error("DisablePreviewFetch should be true")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{not json}`)

	if _, err := Load(dir); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

func TestLoad_DisabledTools(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"disabled_tools": ["item_delete", "tag_emoji"]}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.DisabledTools) != 2 {
		t.Fatalf("DisabledTools length = %d, want 2", len(cfg.DisabledTools))
	}
	if cfg.DisabledTools[0] != "item_delete" || cfg.DisabledTools[1] != "tag_emoji" {
		t.Errorf("DisabledTools = %v, want [item_delete tag_emoji]", cfg.DisabledTools)
	}
}

func TestLoadWithRepo_BothPresent(t *testing.T) {
	globalDir := t.TempDir()
	repoRoot := t.TempDir()

	writeConfig(t, globalDir, `{"suggest_tag_limit": 4, "disabled_tools": ["item_delete"]}`)
	writeConfig(t, filepath.Join(repoRoot, DirName), `{"suggest_tag_limit": 3, "disabled_tools": ["tag_emoji"]}`)

	cfg, err := LoadWithRepo(globalDir, repoRoot)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}
	if cfg.SuggestTagLimit != 3 {
		t.Errorf("SuggestTagLimit = %d, want 3 (repo override)", cfg.SuggestTagLimit)
	}
	if len(cfg.DisabledTools) != 2 {
		t.Errorf("DisabledTools length = %d, want 2", len(cfg.DisabledTools))
	}
}

func TestLoadWithRepo_OnlyGlobal(t *testing.T) {
	globalDir := t.TempDir()
	writeConfig(t, globalDir, `{"auto_tag_limit": 2}`)

	cfg, err := LoadWithRepo(globalDir, t.TempDir())
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}
	if cfg.AutoTagLimit != 2 {
		t.Errorf("AutoTagLimit = %d, want 2", cfg.AutoTagLimit)
	}
}

func TestLoadWithRepo_NeitherPresent(t *testing.T) {
	cfg, err := LoadWithRepo(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}
	if cfg.AutoTagLimit != 1 || cfg.SuggestTagLimit != 2 {
		t.Errorf("limits = %d/%d, want defaults 1/2", cfg.AutoTagLimit, cfg.SuggestTagLimit)
	}
	if len(cfg.DisabledTools) != 0 {
		t.Errorf("DisabledTools = %v, want empty", cfg.DisabledTools)
	}
}

func TestLoadWithRepo_InvalidRepoConfig(t *testing.T) {
	repoRoot := t.TempDir()
	writeConfig(t, filepath.Join(repoRoot, DirName), `[]`)

	if _, err := LoadWithRepo(t.TempDir(), repoRoot); err == nil {
		t.Fatal("LoadWithRepo() expected error, got nil")
	}
}

func TestLoadWithRepo_WalksUpward(t *testing.T) {
	repoRoot := t.TempDir()
	writeConfig(t, filepath.Join(repoRoot, DirName), `{"disabled_types": ["tag"]}`)

	subdir := filepath.Join(repoRoot, "subdir", "deeper")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	cfg, err := LoadWithRepo(t.TempDir(), subdir)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}
	if len(cfg.DisabledTypes) != 1 || cfg.DisabledTypes[0] != "tag" {
		t.Errorf("DisabledTypes = %v, want [tag]", cfg.DisabledTypes)
	}
}

func TestMerge_ScalarOverride(t *testing.T) {
	base := &Config{AutoTagLimit: 1, DBMaxOpenConns: 5, LogLevel: "warn"}
	overlay := &Config{AutoTagLimit: 2, LogLevel: "  "}

	result := Merge(base, overlay)

	if result.AutoTagLimit != 2 {
		t.Errorf("AutoTagLimit = %d, want 2 (overlay)", result.AutoTagLimit)
	}
	if result.DBMaxOpenConns != 5 {
		t.Errorf("DBMaxOpenConns = %d, want 5 (base, overlay is zero)", result.DBMaxOpenConns)
	}
	if result.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q (blank overlay ignored)", result.LogLevel, "warn")
	}
}

func TestMerge_BooleanOr(t *testing.T) {
	result := Merge(&Config{DisablePreviewFetch: true}, &Config{})
	if !result.DisablePreviewFetch {
		t.Error("DisablePreviewFetch should be true (base OR overlay)")
	}
}

func TestMerge_ArrayMergeDedup(t *testing.T) {
	base := &Config{DisabledTools: []string{"item_delete", " item_ask "}}
	overlay := &Config{DisabledTools: []string{"item_ask", "tag_emoji", ""}}

	result := Merge(base, overlay)

	want := []string{"item_delete", "item_ask", "tag_emoji"}
	if len(result.DisabledTools) != len(want) {
		t.Fatalf("DisabledTools = %v, want %v", result.DisabledTools, want)
	}
	for i := range want {
		if result.DisabledTools[i] != want[i] {
			t.Errorf("DisabledTools[%d] = %q, want %q", i, result.DisabledTools[i], want[i])
		}
	}
}

func TestFindRepoConfig(t *testing.T) {
	root := t.TempDir()
	configPath := writeConfig(t, filepath.Join(root, DirName), `{}`)
	deeper := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(deeper, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	if got := FindRepoConfig(root); got != configPath {
		t.Errorf("FindRepoConfig(root) = %q, want %q", got, configPath)
	}
	if got := FindRepoConfig(deeper); got != configPath {
		t.Errorf("FindRepoConfig(deeper) = %q, want %q", got, configPath)
	}
	if got := FindRepoConfig(t.TempDir()); got != "" {
		t.Errorf("FindRepoConfig(empty) = %q, want empty string", got)
	}
}
