package tap

import (
	"github.com/goccy/go-json"

	"tapcsv/pkg/config"
)

// Name is the executable name reported by --about.
const Name = "tap-csv"

// About describes the tap for --about.
type About struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Version        string          `json:"version"`
	Capabilities   []string        `json:"capabilities"`
	SettingsSchema json.RawMessage `json:"settings"`
}

// NewAbout returns the about document for version.
func NewAbout(version string) About {
	return About{
		Name:           Name,
		Description:    "Singer tap for CSV files",
		Version:        version,
		Capabilities:   []string{"about", "catalog", "discover", "state"},
		SettingsSchema: config.SettingsSchema(),
	}
}
