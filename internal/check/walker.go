package check

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"guardrail/internal/config"
)

// CollectFiles walks the project tree and returns the slash-separated
// relative paths selected by the include globs. Excluded directory names
// are never descended into.
func CollectFiles(root string, cfg *config.ChecksConfig) ([]string, error) {
	excluded := excludeSet(cfg)

	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && (excluded[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if matchesAny(rel, cfg.Include) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

// FilterPaths applies exclusion rules to an explicit path list (e.g. the
// staged files from git). Include globs are not applied: a path named
// explicitly is meant to be checked.
func FilterPaths(paths []string, cfg *config.ChecksConfig) []string {
	excluded := excludeSet(cfg)

	var kept []string
	for _, p := range paths {
		rel := filepath.ToSlash(p)
		skip := false
		for _, seg := range strings.Split(path.Dir(rel), "/") {
			if excluded[seg] || (seg != "." && strings.HasPrefix(seg, ".")) {
				skip = true
				break
			}
		}
		if !skip {
			kept = append(kept, rel)
		}
	}
	return kept
}

// LoadFile reads one file for checking.
func LoadFile(root, rel string) (*File, error) {
	abs := filepath.Join(root, filepath.FromSlash(rel))
	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	return &File{
		Path:    abs,
		RelPath: rel,
		Content: content,
		Lines:   strings.Split(string(content), "\n"),
	}, nil
}

func excludeSet(cfg *config.ChecksConfig) map[string]bool {
	excluded := make(map[string]bool, len(cfg.Exclude))
	for _, name := range cfg.Exclude {
		excluded[name] = true
	}
	return excluded
}

// matchesAny matches a relative path against the include globs. A "**/"
// prefix matches at any depth (including the root); other globs match the
// whole relative path.
func matchesAny(rel string, globs []string) bool {
	base := path.Base(rel)
	for _, glob := range globs {
		if trimmed, ok := strings.CutPrefix(glob, "**/"); ok {
			if m, err := path.Match(trimmed, base); err == nil && m {
				return true
			}
			continue
		}
		if m, err := path.Match(glob, rel); err == nil && m {
			return true
		}
	}
	return false
}
