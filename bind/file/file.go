// Package file provides a file system based source for binders.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/yacchi/utsuwa/bind"
)

var userHomeDir = os.UserHomeDir

// Source loads raw data from a file and pushes change notifications via
// fsnotify.
type Source struct {
	path         string
	searchPaths  []string
	resolvedPath string // cached path after resolution
}

// Ensure Source implements the bind interfaces.
var _ bind.Source = (*Source)(nil)
var _ bind.WatchableSource = (*Source)(nil)

// Option configures a Source.
type Option func(*Source)

// WithSearchPaths adds additional paths to search for the file.
// During Load, paths are tried in order: primary path first, then search
// paths. The first existing file is used. If no file exists, the primary
// path is used and Load reports its error.
func WithSearchPaths(paths ...string) Option {
	return func(s *Source) {
		s.searchPaths = append(s.searchPaths, paths...)
	}
}

// New creates a source that reads from a file.
// The path can be absolute or relative. Tilde (~) expansion is supported.
//
// Example:
//
//	src := file.New("~/.config/app/config.yaml")
//	src := file.New("/etc/app/config.yaml")
//	src := file.New("config.yaml",
//	    file.WithSearchPaths("/etc/app/config.yaml", ".app.yaml"))
func New(path string, opts ...Option) *Source {
	s := &Source{
		path: path,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load implements the bind.Source interface.
// If search paths are configured, files are searched in order: primary
// path first, then search paths. The first existing file is loaded.
func (s *Source) Load(ctx context.Context) ([]byte, error) {
	// Check for cancellation
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolvedPath, originalPath, err := s.resolvePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolvedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", originalPath, err)
	}

	// Cache the resolved path for subsequent operations
	s.resolvedPath = resolvedPath

	return data, nil
}

// String implements the bind.Source interface.
func (s *Source) String() string {
	return "file:" + s.path
}

// ResolvedPath returns the actual file path being used after resolution.
// This may differ from the declared path if a search path was used.
// Returns the expanded primary path if no file has been loaded yet.
func (s *Source) ResolvedPath() string {
	if s.resolvedPath != "" {
		return s.resolvedPath
	}
	expanded, err := expandTilde(s.path)
	if err != nil {
		return s.path
	}
	return expanded
}

// resolvePath finds the first existing file from the search paths.
// Returns (expandedPath, originalPath, error).
// If no file exists, returns the expanded primary path.
func (s *Source) resolvePath() (expanded string, original string, err error) {
	// Build list of paths to search: primary path first, then search paths
	allPaths := make([]string, 0, 1+len(s.searchPaths))
	allPaths = append(allPaths, s.path)
	allPaths = append(allPaths, s.searchPaths...)

	for _, p := range allPaths {
		expanded, err := expandTilde(p)
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(expanded); statErr == nil {
			return expanded, p, nil
		}
	}

	// No file found, return primary path (will likely cause an error on read)
	expanded, err = expandTilde(s.path)
	if err != nil {
		return "", s.path, fmt.Errorf("failed to expand path %q: %w", s.path, err)
	}
	return expanded, s.path, nil
}

// expandTilde expands tilde (~) in the path.
// Handles both "~" (home directory) and "~/path" (path under home).
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand home directory: %w", err)
	}

	if len(path) == 1 {
		// Just "~"
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		// "~/path" - join home with the path after "~/"
		return filepath.Join(homeDir, path[2:]), nil
	}

	// "~something" - not a valid home expansion, return as-is
	return path, nil
}

// Subscribe implements the bind.WatchableSource interface.
// It sets up fsnotify-based watching and calls notify when the file
// changes. Notifications are event-only: notify(nil, nil) signals a
// change and the watcher fetches fresh data via Load.
func (s *Source) Subscribe(ctx context.Context, notify bind.NotifyFunc) (bind.StopFunc, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	path := s.ResolvedPath()

	// Watch the directory containing the file rather than the file itself.
	// This handles atomic writes (temp file + rename) and file recreation.
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch directory %q: %w", dir, err)
	}

	filename := filepath.Base(path)

	go func() {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				// Only process events for our specific file
				if filepath.Base(event.Name) != filename {
					continue
				}
				// Handle write, create, and rename events
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					notify(nil, nil)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				notify(nil, err)
			case <-ctx.Done():
				return
			}
		}
	}()

	stop := func(ctx context.Context) error {
		return w.Close()
	}

	return stop, nil
}
