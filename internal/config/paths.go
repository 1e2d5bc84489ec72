package config

import (
	"os"
	"path/filepath"
)

// GetGlobalDataDir returns ~/.dayplan. It is a variable so tests can point it elsewhere.
var GetGlobalDataDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, LocalDir), nil
}

// DataDir returns the directory holding the plan data.
// Resolution order (first match wins):
// 1. Local directory: ./.dayplan (if it exists)
// 2. XDG_DATA_HOME/dayplan (if XDG_DATA_HOME is set)
// 3. Global fallback: ~/.dayplan
func DataDir() string {
	if info, err := os.Stat(LocalDir); err == nil && info.IsDir() {
		return LocalDir
	}
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, AppName)
	}
	dir, err := GetGlobalDataDir()
	if err != nil {
		return LocalDir
	}
	return dir
}

// StoragePath resolves the data file for the configured backend. An explicit
// path always wins.
func (c StorageConfig) StoragePath() string {
	if c.Path != "" {
		return c.Path
	}
	if c.Backend == "sqlite" {
		return filepath.Join(DataDir(), DefaultSQLiteFile)
	}
	name := DefaultDataFile
	if c.Format != "" && c.Format != DefaultFormat {
		name = "plan." + c.Format
	}
	return filepath.Join(DataDir(), name)
}

// SeedDir defaults to the directory the data lives in.
func (c SeedConfig) SeedDir(storagePath string) string {
	if c.Dir != "" {
		return c.Dir
	}
	return filepath.Dir(storagePath)
}

// CredentialsPath resolves the Google OAuth client secret file.
func (c CalendarConfig) CredentialsPath() string {
	if c.CredentialsFile != "" {
		return c.CredentialsFile
	}
	return filepath.Join(DataDir(), "credentials.json")
}

// TokenPath resolves where the OAuth token is cached.
func (c CalendarConfig) TokenPath() string {
	if c.TokenFile != "" {
		return c.TokenFile
	}
	return filepath.Join(DataDir(), "token.json")
}
