// Package config holds the application configuration type, its defaults and
// the resolution of on-disk locations.
package config

const (
	// AppName names the config file, env prefix and data directories.
	AppName = "dayplan"

	// LocalDir is the per-directory data folder, like a project's .git.
	LocalDir = ".dayplan"

	DefaultBackend    = "file"
	DefaultDataFile   = "plan.json"
	DefaultSQLiteFile = "plan.db"
	DefaultFormat     = "json"

	DefaultServerHost = "127.0.0.1"
	DefaultServerPort = 7420

	DefaultSuggestions   = 8
	DefaultHistogramDays = 7

	DefaultCalendarName = "primary"
)

// DefaultAllowedOrigins are the browser origins allowed to call the local API.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}
