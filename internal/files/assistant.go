package files

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jamesstrohm55/ALFRED/internal/logger"
)

// excludedDirs are system and cache directories skipped during search.
var excludedDirs = map[string]bool{
	"$Recycle.Bin": true, "Windows": true, "ProgramData": true, "AppData": true,
	"node_modules": true, ".git": true, "__pycache__": true, ".venv": true, "venv": true,
	"System Volume Information": true, "Recovery": true,
	".cache": true, ".npm": true, ".yarn": true, "site-packages": true,
}

// DefaultMaxResults caps search results to bound memory use.
const DefaultMaxResults = 100

// Assistant finds, opens, deletes, and lists files.
type Assistant struct {
	searchRoot string
	maxResults int
	opener     func(path string) error // opens with the OS default application
}

// NewAssistant creates a file assistant rooted at searchRoot (the user's
// home directory when empty).
func NewAssistant(searchRoot string, maxResults int) *Assistant {
	if searchRoot == "" {
		searchRoot, _ = os.UserHomeDir()
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Assistant{
		searchRoot: searchRoot,
		maxResults: maxResults,
		opener:     osOpen,
	}
}

// isSafePath rejects paths that resolve into protected system locations.
func isSafePath(path string) bool {
	if path == "" {
		return false
	}

	resolved, err := filepath.Abs(path)
	if err != nil {
		logger.Warn("Invalid path '%s': %v", path, err)
		return false
	}

	pathLower := strings.ToLower(resolved)
	dangerous := []string{
		`windows\system32`,
		`windows\syswow64`,
		"program files",
		`\system volume information`,
	}
	for _, pattern := range dangerous {
		if strings.Contains(pathLower, pattern) {
			logger.Warn("Blocked operation on system path: %s", path)
			return false
		}
	}
	return true
}

// Find walks the search root collecting files whose name contains
// filename (case-insensitive). The walk checks ctx between directories
// so a caller can cancel mid-search, and stops at the result cap.
func (a *Assistant) Find(ctx context.Context, filename string) []string {
	if _, err := os.Stat(a.searchRoot); err != nil {
		logger.Warn("Search path does not exist: %s", a.searchRoot)
		return nil
	}

	var matches []string
	needle := strings.ToLower(filename)
	scanned := 0

	logger.Info("Searching for '%s' in %s", filename, a.searchRoot)

	err := filepath.WalkDir(a.searchRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // permission errors: skip and continue
		}

		if d.IsDir() {
			if err := ctx.Err(); err != nil {
				logger.Info("Search cancelled after scanning %d files", scanned)
				return filepath.SkipAll
			}
			name := d.Name()
			if path != a.searchRoot && (excludedDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		scanned++
		if strings.Contains(strings.ToLower(d.Name()), needle) {
			matches = append(matches, path)
			if len(matches) >= a.maxResults {
				logger.Info("Search stopped: reached %d results", a.maxResults)
				return filepath.SkipAll
			}
		}
		return nil
	})
	if err != nil && err != filepath.SkipAll {
		logger.Error("Error during file search: %v", err)
	}

	logger.Info("Search complete: found %d matches after scanning %d files", len(matches), scanned)
	return matches
}

// Open opens a file or folder with the system's default application.
func (a *Assistant) Open(path string) string {
	if !isSafePath(path) {
		return "Cannot open this path for security reasons."
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Sprintf("Path does not exist: %s", path)
	}

	if err := a.opener(path); err != nil {
		logger.Error("Error opening '%s': %v", path, err)
		return fmt.Sprintf("Error opening file: %v", err)
	}

	logger.Info("Opened: %s", path)
	return fmt.Sprintf("Opened: %s", path)
}

// Delete removes a file. Directories are refused.
func (a *Assistant) Delete(path string) string {
	if !isSafePath(path) {
		return "Cannot delete this path for security reasons."
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Sprintf("File does not exist: %s", path)
	}
	if info.IsDir() {
		return "Cannot delete directories with this command. Use a file manager for directories."
	}

	if err := os.Remove(path); err != nil {
		if os.IsPermission(err) {
			return fmt.Sprintf("Permission denied: cannot delete %s", path)
		}
		logger.Error("Error deleting '%s': %v", path, err)
		return fmt.Sprintf("Error deleting file: %v", err)
	}

	logger.Info("Deleted file: %s", path)
	return fmt.Sprintf("File deleted successfully: %s", path)
}

// ListFolder lists entry names in a folder.
func (a *Assistant) ListFolder(folder string) ([]string, error) {
	if !isSafePath(folder) {
		return nil, fmt.Errorf("cannot list this path for security reasons")
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		logger.Error("Error listing '%s': %v", folder, err)
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	logger.Debug("Listed %d items in %s", len(names), folder)
	return names, nil
}

// osOpen opens a path with the platform's default handler.
func osOpen(path string) error {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path).Start()
	case "darwin":
		return exec.Command("open", path).Start()
	default:
		return exec.Command("xdg-open", path).Start()
	}
}
