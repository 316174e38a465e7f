package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AlarmExtensions lists the audio file types accepted as a custom alarm.
var AlarmExtensions = []string{".mp3", ".wav", ".flac", ".ogg"}

// IsAlarmFile reports whether path has an accepted alarm extension.
func IsAlarmFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range AlarmExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ValidateAlarmSource checks a custom alarm path. Empty selects the
// built-in tone and is always valid.
func ValidateAlarmSource(path string) error {
	if path == "" {
		return nil
	}
	if !IsAlarmFile(path) {
		return fmt.Errorf("%w: %s is not one of %s", ErrAlarmSource, filepath.Base(path), strings.Join(AlarmExtensions, ", "))
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAlarmSource, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrAlarmSource, path)
	}
	return nil
}

// AlarmName is the short label shown for an alarm source.
func AlarmName(path string) string {
	if path == "" {
		return "Default"
	}
	name := filepath.Base(path)
	if len([]rune(name)) > 15 {
		return string([]rune(name)[:12]) + "..."
	}
	return name
}
