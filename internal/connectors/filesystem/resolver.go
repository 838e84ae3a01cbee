package filesystem

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath turns user input into a local path. Terminals paste dropped
// files as file:// URIs, quoted paths, or paths with backslash-escaped spaces.
// A leading ~ expands to the home directory.
func ResolvePath(input string) string {
	p := strings.TrimSpace(input)
	if len(p) >= 2 && (p[0] == '\'' || p[0] == '"') && p[len(p)-1] == p[0] {
		p = p[1 : len(p)-1]
	}

	if strings.HasPrefix(p, "file://") {
		if u, err := url.Parse(p); err == nil && u.Path != "" {
			return filepath.Clean(u.Path)
		}
		p = strings.TrimPrefix(p, "file://")
	} else {
		p = strings.ReplaceAll(p, `\ `, " ")
	}
	if p == "" {
		return ""
	}

	p = expandHome(p)
	return filepath.Clean(p)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
