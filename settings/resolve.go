package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"jobtracker/jsonfile"
	"jobtracker/models"
)

// Source identifies where a storage directory was resolved from
type Source int

const (
	// SourceInstallDir means nothing pointed elsewhere; data lives next to the executable
	SourceInstallDir Source = iota
	// SourceSettings means the install directory's settings.json named a data directory
	SourceSettings
	// SourcePointer means the pointer file in the user config directory named it
	SourcePointer
)

func (s Source) String() string {
	switch s {
	case SourcePointer:
		return "pointer file"
	case SourceSettings:
		return "settings file"
	default:
		return "install directory"
	}
}

// Resolution is the outcome of ResolveDataDirectory
type Resolution struct {
	Dir    string
	Source Source
}

// pointerDirName is the subdirectory of os.UserConfigDir holding the pointer file
const pointerDirName = "jobtracker"

// pointerFileName is the name of the pointer file
const pointerFileName = "storage.json"

// DefaultPointerPath returns the per-user location of the pointer file
func DefaultPointerPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, pointerDirName, pointerFileName), nil
}

// ResolveDataDirectory decides which directory holds the user's data.
//
// Precedence: the pointer file, then the dataDirectory field of the settings file
// in installDir, then installDir itself. A candidate is only used when it names an
// existing directory; an unreadable or stale candidate falls through to the next.
// An empty pointerPath skips the pointer file.
func ResolveDataDirectory(installDir, pointerPath string) Resolution {
	if pointerPath != "" {
		var ptr models.StoragePointer
		if err := jsonfile.Read(pointerPath, &ptr); err == nil && isDir(ptr.DataDirectory) {
			return Resolution{Dir: filepath.Clean(ptr.DataDirectory), Source: SourcePointer}
		}
	}

	var local models.Settings
	if err := jsonfile.Read(filepath.Join(installDir, models.SettingsFileName), &local); err == nil && isDir(local.DataDirectory) {
		return Resolution{Dir: filepath.Clean(local.DataDirectory), Source: SourceSettings}
	}

	return Resolution{Dir: installDir, Source: SourceInstallDir}
}

// writePointer records dir in the pointer file, creating its parent directory
func writePointer(pointerPath, dir string) error {
	if pointerPath == "" {
		return errors.New("no pointer file location")
	}
	if err := os.MkdirAll(filepath.Dir(pointerPath), 0o755); err != nil {
		return fmt.Errorf("failed to create pointer directory: %w", err)
	}
	return jsonfile.Write(pointerPath, models.StoragePointer{DataDirectory: dir})
}

func isDir(path string) bool {
	if path == "" || !filepath.IsAbs(path) {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
