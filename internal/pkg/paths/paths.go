// Package paths resolves the filesystem locations the agent depends on:
// the directory of the running executable and the per-user configuration
// directory. Everything else in the program asks this package instead of
// hardcoding platform conventions.
package paths

import (
	"os"
	"path/filepath"
)

// appDirName is the directory name used under the platform config root.
const appDirName = "storwatch"

// ExecutableDir returns the directory containing the running binary.
func ExecutableDir() (string, error) {
	executable, err := os.Executable()
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(executable)
	if err != nil {
		resolved = executable
	}
	return filepath.Dir(resolved), nil
}

// UserConfigDir returns the per-user configuration directory for the agent
// (e.g. ~/.config/storwatch on Linux, %AppData%\storwatch on Windows).
// The directory is not created.
func UserConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appDirName), nil
}

// ConfigCandidates lists the locations searched for a configuration file
// with the given name, in priority order: working directory, user config
// directory, executable directory.
func ConfigCandidates(filename string) []string {
	candidates := []string{filename}

	if userDir, err := UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(userDir, filename))
	}
	if exeDir, err := ExecutableDir(); err == nil {
		candidates = append(candidates, filepath.Join(exeDir, filename))
	}

	return candidates
}

// RuntimeDir returns the directory for runtime state such as the PID file.
func RuntimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir
	}
	return os.TempDir()
}
