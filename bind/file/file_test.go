package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yacchi/utsuwa"
	"github.com/yacchi/utsuwa/bind"
	"github.com/yacchi/utsuwa/codec/json"
	"github.com/yacchi/utsuwa/uttest"
)

func TestSource_Compliance(t *testing.T) {
	dir := t.TempDir()
	n := 0
	factory := func(data []byte) bind.Source {
		n++
		path := filepath.Join(dir, fmt.Sprintf("config-%d.json", n))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		return New(path)
	}
	uttest.NewSourceTester(t, factory).TestAll()
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir() error = %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"config.yaml", "config.yaml"},
		{"~", home},
		{"~/config.yaml", filepath.Join(home, "config.yaml")},
		{"~someone/config.yaml", "~someone/config.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := expandTilde(tt.in)
			if err != nil {
				t.Fatalf("expandTilde() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("expandTilde(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandTilde_HomeDirError(t *testing.T) {
	orig := userHomeDir
	userHomeDir = func() (string, error) { return "", errors.New("no home") }
	defer func() { userHomeDir = orig }()

	if _, err := expandTilde("~/config.yaml"); err == nil {
		t.Fatal("expandTilde() expected error, got nil")
	}
	// Paths without a tilde never consult the home directory.
	if _, err := expandTilde("config.yaml"); err != nil {
		t.Fatalf("expandTilde() error = %v", err)
	}
}

func TestResolvePathAndResolvedPath(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "primary.json")
	alt := filepath.Join(dir, "alt.json")

	if err := os.WriteFile(alt, []byte("alt"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	s := New(primary, WithSearchPaths(alt))

	got := s.ResolvedPath()
	if got != primary {
		t.Fatalf("ResolvedPath() before Load = %q, want %q", got, primary)
	}

	data, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(data) != "alt" {
		t.Fatalf("Load() data = %q, want %q", string(data), "alt")
	}
	if got := s.ResolvedPath(); got != alt {
		t.Fatalf("ResolvedPath() after Load = %q, want %q", got, alt)
	}
}

func TestLoad_NoFilesFound(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "missing.json")
	s := New(primary, WithSearchPaths(filepath.Join(dir, "also-missing.json")))

	_, err := s.Load(context.Background())
	if err == nil {
		t.Fatal("Load() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read file") {
		t.Fatalf("error = %q, want to contain %q", err.Error(), "failed to read file")
	}
	// Binders rely on this to decide whether a configured default applies.
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("error = %v, want fs.ErrNotExist in chain", err)
	}
}

func TestString(t *testing.T) {
	s := New("/etc/app/config.yaml")
	if got, want := s.String(), "file:/etc/app/config.yaml"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestBinderWatch_FileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"listen": ":8080"}`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	type serverConfig struct {
		Listen string `json:"listen"`
	}
	cell := utsuwa.New[serverConfig]("server")

	b := bind.New(cell, New(path), json.New())
	ctx := context.Background()
	if err := b.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	applied := make(chan struct{}, 16)
	cfg := bind.WatchConfig{
		DebounceDelay: 20 * time.Millisecond,
		OnApply:       func() { applied <- struct{}{} },
		OnError:       func(err error) { t.Logf("watch error: %v", err) },
	}
	stop, err := b.Watch(ctx, cfg)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"listen": ":9090"}`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	select {
	case <-applied:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for reload")
	}

	if got := cell.Ref().Listen; got != ":9090" {
		t.Errorf("Listen = %q, want %q", got, ":9090")
	}

	if err := stop(context.Background()); err != nil {
		t.Errorf("stop() error = %v", err)
	}
}
