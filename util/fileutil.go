package util

import (
	"os"
	"path/filepath"
	"strings"
)

// FileExists returns true if the file at path exists.
// This returns false if the file does not exist, or if it exists
// but is not accessible to the current user.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ExpandTilde expands the tilde in a file path to the current
// user's home directory.
func ExpandTilde(filePath string) (string, error) {
	if !strings.HasPrefix(filePath, "~") {
		return filePath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, strings.TrimPrefix(filePath, "~")), nil
}

// LooksSafeToDelete returns true if the path looks safe to delete.
// A path looks safe if it has a minimum length and a minimum number
// of path separators. This guards against deleting paths like "/"
// or "/usr" because of an empty or misconfigured setting.
func LooksSafeToDelete(path string, minLength, minSeparators int) bool {
	separators := strings.Count(path, string(os.PathSeparator))
	return len(path) >= minLength && separators >= minSeparators
}

// StringListContains returns true if list contains item.
func StringListContains(list []string, item string) bool {
	for _, listItem := range list {
		if listItem == item {
			return true
		}
	}
	return false
}
