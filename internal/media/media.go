// Package media recognizes the image and video files the generators accept
// and probes image dimensions for aspect-ratio-preserving placement.
package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"chorale/internal/textutil"
)

// ImageExts lists recognized image extensions in match-priority order.
var ImageExts = []string{".png", ".jpg", ".jpeg", ".webp"}

// VideoExts lists recognized video extensions in match-priority order.
var VideoExts = []string{".mp4", ".mov", ".avi"}

// IsImage reports whether path has a recognized image extension.
func IsImage(path string) bool { return hasExt(path, ImageExts) }

// IsVideo reports whether path has a recognized video extension.
func IsVideo(path string) bool { return hasExt(path, VideoExts) }

// IsMedia reports whether path is a recognized image or video.
func IsMedia(path string) bool { return IsImage(path) || IsVideo(path) }

func hasExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// List returns the recognized media files directly inside dir, natural
// sorted by name. Hidden files are skipped.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if IsMedia(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	textutil.SortNatural(names)
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

// FormatName returns the format attribute value the proprietary document
// uses for an image element.
func FormatName(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "PNG image"
	case ".webp":
		return "WebP image"
	default:
		return "JPEG image"
	}
}

// Stem returns the file name without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
