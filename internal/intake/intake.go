// Package intake builds validated descriptors from what a user submits:
// a repository URL for a chosen platform, or an uploaded archive.
package intake

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/blackwell-systems/codegauge/internal/estimate"
)

// DefaultMaxArchiveBytes is the largest archive accepted by default.
const DefaultMaxArchiveBytes int64 = 100 * 1024 * 1024

// ArchiveExtensions lists the accepted archive file extensions.
var ArchiveExtensions = []string{".zip", ".rar"}

var platformPatterns = map[estimate.Platform]*regexp.Regexp{
	estimate.PlatformGitHub:      regexp.MustCompile(`^https://github\.com/[^/]+/[^/]+`),
	estimate.PlatformGitLab:      regexp.MustCompile(`^https://gitlab\.com/[^/]+/[^/]+`),
	estimate.PlatformBitbucket:   regexp.MustCompile(`^https://bitbucket\.org/[^/]+/[^/]+`),
	estimate.PlatformSourceForge: regexp.MustCompile(`^https://sourceforge\.net/projects/[^/]+`),
	estimate.PlatformApacheSVN:   regexp.MustCompile(`^https://svn\.apache\.org/repos/asf/[^/]+`),
}

var exampleURLs = map[estimate.Platform]string{
	estimate.PlatformGitHub:      "https://github.com/username/repository",
	estimate.PlatformGitLab:      "https://gitlab.com/username/repository",
	estimate.PlatformBitbucket:   "https://bitbucket.org/username/repository",
	estimate.PlatformSourceForge: "https://sourceforge.net/projects/project-name/",
	estimate.PlatformApacheSVN:   "https://svn.apache.org/repos/asf/project-name/",
}

// ExampleURL returns a placeholder URL showing the expected shape for p.
func ExampleURL(p estimate.Platform) string {
	return exampleURLs[p]
}

// MatchesPlatform reports whether url has the shape expected for p.
func MatchesPlatform(p estimate.Platform, url string) bool {
	re, ok := platformPatterns[p]
	return ok && re.MatchString(url)
}

// DetectPlatform returns the first platform whose URL pattern matches.
func DetectPlatform(url string) (estimate.Platform, bool) {
	url = strings.TrimSpace(url)
	for _, p := range estimate.Platforms {
		if MatchesPlatform(p, url) {
			return p, true
		}
	}
	return "", false
}

// ParseRepository validates url against the platform pattern and returns a
// repository descriptor. An empty platform is detected from the URL.
func ParseRepository(platform estimate.Platform, url string) (estimate.Descriptor, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return estimate.Descriptor{}, fmt.Errorf("%w: repository URL is required", estimate.ErrInvalidDescriptor)
	}

	if platform == "" {
		detected, ok := DetectPlatform(url)
		if !ok {
			return estimate.Descriptor{}, fmt.Errorf("%w: cannot detect platform for %q", estimate.ErrInvalidDescriptor, url)
		}
		platform = detected
	}

	if !platform.Valid() {
		return estimate.Descriptor{}, fmt.Errorf("%w: unknown platform %q", estimate.ErrInvalidDescriptor, platform)
	}
	if !MatchesPlatform(platform, url) {
		return estimate.Descriptor{}, fmt.Errorf("%w: %q is not a valid %s URL (expected e.g. %s)",
			estimate.ErrInvalidDescriptor, url, platform, ExampleURL(platform))
	}

	return estimate.NewRepository(platform, url)
}

// Archive validates an uploaded archive by name and size. Only the name's
// extension is checked; contents are never inspected.
func Archive(name string, size, maxBytes int64) (estimate.Descriptor, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxArchiveBytes
	}
	if !hasArchiveExtension(name) {
		return estimate.Descriptor{}, fmt.Errorf("%w: %q must be one of %s",
			estimate.ErrInvalidDescriptor, name, strings.Join(ArchiveExtensions, ", "))
	}
	if size > maxBytes {
		return estimate.Descriptor{}, fmt.Errorf("%w: %q is %d bytes, limit is %d",
			estimate.ErrInvalidDescriptor, name, size, maxBytes)
	}
	return estimate.NewArchive(filepath.Base(name), size)
}

// ArchiveFromFile stats path and validates it as an uploaded archive.
func ArchiveFromFile(path string, maxBytes int64) (estimate.Descriptor, error) {
	info, err := os.Stat(path)
	if err != nil {
		return estimate.Descriptor{}, fmt.Errorf("%w: %v", estimate.ErrInvalidDescriptor, err)
	}
	if info.IsDir() {
		return estimate.Descriptor{}, fmt.Errorf("%w: %q is a directory", estimate.ErrInvalidDescriptor, path)
	}
	return Archive(path, info.Size(), maxBytes)
}

func hasArchiveExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range ArchiveExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
