// Package source discovers video files for batch processing.
package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".mov":  true,
	".avi":  true,
	".webm": true,
	".m4v":  true,
}

// IsVideo reports whether the path has a recognized video extension.
func IsVideo(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// Key returns the clip key for a video path: the base name without its
// extension.
func Key(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// hidden filters dotfiles and AppleDouble ("._") metadata files that macOS
// archives tend to carry.
func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// ListVideos expands the given paths into a sorted list of video files.
// Files are accepted when they carry a video extension; directories are
// walked recursively. Hidden files are skipped.
func ListVideos(paths []string) ([]string, error) {
	var videos []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			videos = append(videos, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", path, err)
		}

		if !info.IsDir() {
			if hidden(filepath.Base(path)) || !IsVideo(path) {
				return nil, fmt.Errorf("%s is not a video file", path)
			}
			add(path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if hidden(d.Name()) && p != path {
					return filepath.SkipDir
				}
				return nil
			}
			if !hidden(d.Name()) && IsVideo(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", path, err)
		}
	}

	sort.Strings(videos)
	return videos, nil
}
