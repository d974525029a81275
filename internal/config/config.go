// Package config handles repository and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents repository configuration stored in .refdeck/config.json.
type Config struct {
	PDFRoot string `json:"pdf_root"` // Path to the PDF folder, ~ allowed
	Mailto  string `json:"mailto,omitempty"`
}

const (
	RefdeckDir = ".refdeck"
	ConfigFile = "config.json"
	RefsFile   = "refs.jsonl"
	CacheDir   = "cache"
	DBFile     = "refs.db"
)

// RefdeckPath returns the path to the .refdeck directory from a root path.
func RefdeckPath(root string) string {
	return filepath.Join(root, RefdeckDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, RefdeckDir, ConfigFile)
}

// RefsPath returns the path to refs.jsonl from a root path.
func RefsPath(root string) string {
	return filepath.Join(root, RefdeckDir, RefsFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, RefdeckDir, CacheDir)
}

// DBPath returns the path to refs.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, RefdeckDir, CacheDir, DBFile)
}

// IsRepository checks if the given path contains a refdeck repository.
func IsRepository(root string) bool {
	info, err := os.Stat(RefdeckPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a refdeck repository.
// Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a refdeck repository (no .refdeck directory found)")
		}
		abs = parent
	}
}

// Init creates the .refdeck directory, the cache directory, an empty refs
// file and a default config at the given root.
func Init(root string) error {
	if IsRepository(root) {
		return fmt.Errorf("already a refdeck repository: %s", root)
	}

	if err := os.MkdirAll(CachePath(root), 0755); err != nil {
		return fmt.Errorf("creating repository directories: %w", err)
	}

	f, err := os.OpenFile(RefsPath(root), os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("creating refs file: %w", err)
	}
	f.Close()

	cfg := &Config{}
	return cfg.Save(root)
}

// Load reads configuration from the repository at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ValidatePDFRoot checks that the PDF root path exists and is a directory.
func ValidatePDFRoot(path string) error {
	if path == "" {
		return nil // Empty is allowed (not yet configured)
	}

	expandedPath := ExpandPath(path)

	info, err := os.Stat(expandedPath)
	if err != nil {
		return fmt.Errorf("path does not exist: %s", expandedPath)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", expandedPath)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
