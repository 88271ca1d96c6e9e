// Package asset locates the images shown on the chat page and encodes them
// for inline use.
package asset

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNotFound indicates no directory or file matched.
var ErrNotFound = errors.New("asset not found")

// AvatarPattern matches the profile picture in an assets directory.
const AvatarPattern = "{avatar,profile}.{png,jpg,jpeg,webp}"

// DefaultDirs returns the directories searched for assets when none is
// configured: ./assets, ../assets and <cwd>/assets.
func DefaultDirs() []string {
	dirs := []string{"assets", filepath.Join("..", "assets")}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, filepath.Join(wd, "assets"))
	}
	return dirs
}

// Locate returns the first candidate that is an existing directory. It
// never creates directories.
func Locate(candidates ...string) (string, error) {
	for _, dir := range candidates {
		if dir == "" {
			continue
		}
		info, err := os.Stat(dir)
		if err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", fmt.Errorf("no assets directory in %v: %w", candidates, ErrNotFound)
}

// Find returns the path of the first file in dir matching the doublestar
// pattern, in lexical order.
func Find(dir, pattern string) (string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return "", fmt.Errorf("glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%s in %s: %w", pattern, dir, ErrNotFound)
	}
	slices.Sort(matches)
	return filepath.Join(dir, filepath.FromSlash(matches[0])), nil
}

// DataURI reads the file at path and returns it as a base64 data URI. The
// media type is derived from the file extension.
func DataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read asset: %w", err)
	}
	return "data:" + mediaType(path) + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// LoadDataURI finds the first file matching pattern in the first existing
// directory among dirs and returns it as a data URI.
func LoadDataURI(pattern string, dirs ...string) (string, error) {
	dir, err := Locate(dirs...)
	if err != nil {
		return "", err
	}
	path, err := Find(dir, pattern)
	if err != nil {
		return "", err
	}
	return DataURI(path)
}

func mediaType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return strings.SplitN(t, ";", 2)[0]
	}
	return "application/octet-stream"
}
