package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"srtshift/internal/timecode"
)

func TestLoadNoFileUsesDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Config{Out: "out.srt", Policy: "literal"}, c); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if c.ShiftPolicy() != timecode.Literal {
		t.Fatalf("want literal, got %v", c.ShiftPolicy())
	}
}

func TestLoadCustomFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "ok.yaml")
	if err := os.WriteFile(p, []byte("out: shifted.srt\npolicy: normalized\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Out != "shifted.srt" || c.ShiftPolicy() != timecode.Normalized {
		t.Fatalf("unexpected config: %+v", c)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "c.yaml")
	if err := os.WriteFile(p, []byte("policy: normalized\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Out != "out.srt" {
		t.Fatalf("want out=out.srt, got %s", c.Out)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "c.yaml")
	if err := os.WriteFile(p, []byte("out: file.srt\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SRTSHIFT_OUT", "env.srt")
	t.Setenv("SRTSHIFT_POLICY", "normalized")
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Config{Out: "env.srt", Policy: "normalized"}, c); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}
