package url

import (
	neturl "net/url"
	"os"
	"path/filepath"
	"strings"
)

var knownSchemes = []string{"http:", "https:", "file:", "data:", "about:"}

// Normalize turns command line input into a URL a web view can load.
// Input with a scheme is returned unchanged. A path to an existing file
// becomes a file:// URL. Host-like input gets http:// for loopback hosts
// (dev servers) and https:// otherwise.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	for _, scheme := range knownSchemes {
		if hasSchemePrefix(input, scheme) {
			return input
		}
	}

	if path, ok := existingFile(input); ok {
		return FileURL(path)
	}

	// Looks like a URL (contains . or a port and no spaces)
	if strings.Contains(input, " ") {
		return input
	}
	if isLoopback(input) {
		return "http://" + input
	}
	if strings.Contains(input, ".") {
		return "https://" + input
	}
	return input
}

// FileURL returns the file:// URL of path, made absolute.
func FileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := neturl.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

func existingFile(input string) (string, bool) {
	if strings.HasPrefix(input, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		input = filepath.Join(home, input[2:])
	}
	info, err := os.Stat(input)
	if err != nil || info.IsDir() {
		return "", false
	}
	return input, true
}

func isLoopback(input string) bool {
	host := input
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if h, _, found := strings.Cut(host, ":"); found {
		host = h
	}
	switch host {
	case "localhost", "127.0.0.1", "[::1]":
		return true
	}
	return false
}
