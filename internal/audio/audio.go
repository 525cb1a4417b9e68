// Package audio handles the local audio artifacts of a run: writing MP3
// narrations under the date-stamped output directory, converting them to
// OGG/Opus through ffmpeg, and deriving the public raw-content URLs the
// workspace page embeds.
package audio

import (
	"fmt"
	"os"
	"os/exec"
)

// EnsureDir creates the directory (and parents) if missing.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// SaveBytes writes data to path, replacing any existing file.
func SaveBytes(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// ConvertToOgg transcodes an MP3 file to OGG/Opus by delegating to the ffmpeg
// binary. The MP3 stays in place either way.
func ConvertToOgg(mp3Path, oggPath string) error {
	cmd := exec.Command("ffmpeg", "-y", "-i", mp3Path, "-c:a", "libopus", "-b:a", "48k", oggPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %w (%s)", err, out)
	}
	return nil
}

// RawURL builds the public raw-content URL for a file committed to the
// repository: repo is "owner/name", path is repo-relative with no leading
// slash. Empty repo means no public hosting; callers fall back to the path.
func RawURL(repo, branch, path string) string {
	if repo == "" {
		return path
	}
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s", repo, branch, path)
}
