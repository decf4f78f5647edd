package batch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ExpandGlob expands a pattern relative to baseDir into stylesheet paths,
// supporting ** for recursive matching. An existing path is taken as is,
// even when its name holds glob characters, and directories expand to the
// .css files they contain. A pattern that matches nothing is returned
// unchanged so the read step can report it.
func ExpandGlob(baseDir, pattern string) ([]string, error) {
	paths, _, err := expandPattern(baseDir, pattern)
	return paths, err
}

// expandPattern is ExpandGlob that also reports whether the result is the
// pattern itself rather than an expansion
func expandPattern(baseDir, pattern string) ([]string, bool, error) {
	if filepath.IsAbs(pattern) {
		baseDir = ""
	}
	join := func(rel string) string {
		if baseDir == "" {
			return rel
		}
		return filepath.Join(baseDir, rel)
	}

	literal := join(pattern)
	if info, err := os.Stat(literal); err == nil {
		if info.IsDir() {
			return walkStylesheets(literal), false, nil
		}
		return []string{literal}, true, nil
	}

	var results []string

	if strings.Contains(pattern, "**") {
		parts := strings.SplitN(pattern, "**", 2)
		prefix := strings.TrimSuffix(parts[0], string(filepath.Separator))
		prefix = strings.TrimSuffix(prefix, "/")
		suffix := strings.TrimPrefix(parts[1], string(filepath.Separator))
		suffix = strings.TrimPrefix(suffix, "/")

		startDir := join(prefix)
		if prefix == "" {
			startDir = join(".")
		}

		err := filepath.WalkDir(startDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				return nil
			}

			if suffix != "" {
				matched, _ := filepath.Match(suffix, d.Name())
				if !matched {
					relFromStart, _ := filepath.Rel(startDir, path)
					matched, _ = filepath.Match(suffix, relFromStart)
				}
				if !matched {
					return nil
				}
			} else if !isStylesheet(path) {
				return nil
			}

			results = append(results, path)
			return nil
		})
		if err != nil {
			return nil, false, err
		}
	} else {
		matches, err := filepath.Glob(literal)
		if err != nil && err != filepath.ErrBadPattern {
			return nil, false, err
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				continue
			}
			if info.IsDir() {
				results = append(results, walkStylesheets(match)...)
			} else {
				results = append(results, match)
			}
		}
	}

	if len(results) == 0 {
		return []string{literal}, true, nil
	}

	return results, false, nil
}

// walkStylesheets returns every .css file below dir in lexical order
func walkStylesheets(dir string) []string {
	var results []string
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if isStylesheet(path) {
			results = append(results, path)
		}
		return nil
	})
	return results
}

func isStylesheet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".css")
}

// IsExcluded checks if a path matches any of the exclude patterns
func IsExcluded(path string, excludes []string) bool {
	for _, pattern := range excludes {
		if matchPattern(path, pattern) {
			return true
		}
	}
	return false
}

// matchPattern checks if a path matches a pattern (supports * and **)
func matchPattern(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		parts := strings.SplitN(pattern, "**", 2)
		prefix := strings.TrimSuffix(parts[0], "/")
		suffix := strings.TrimPrefix(parts[1], "/")

		if prefix != "" && !strings.HasPrefix(path, prefix) {
			matched, _ := filepath.Match(prefix+"*", path)
			if !matched {
				return false
			}
		}

		if suffix == "" {
			return true
		}
		if matched, _ := filepath.Match(suffix, filepath.Base(path)); matched {
			return true
		}
		if strings.HasSuffix(path, suffix) {
			return true
		}
		matched, _ := filepath.Match("*"+suffix, path)
		return matched
	}

	if matched, _ := filepath.Match(pattern, path); matched {
		return true
	}

	matched, _ := filepath.Match(pattern, filepath.Base(path))
	return matched
}

// ExpandInputs expands all patterns in order. Paths named directly are
// kept one for one, so a file listed twice is minified twice; paths that
// come from a glob or directory expansion are skipped when already listed
// and filtered through excludes.
func ExpandInputs(baseDir string, patterns []string, excludes []string) ([]string, error) {
	seen := make(map[string]bool)
	var results []string

	for _, pattern := range patterns {
		expanded, literal, err := expandPattern(baseDir, pattern)
		if err != nil {
			return nil, err
		}

		if literal {
			seen[expanded[0]] = true
			results = append(results, expanded[0])
			continue
		}

		for _, path := range expanded {
			rel := path
			if baseDir != "" {
				if r, err := filepath.Rel(baseDir, path); err == nil {
					rel = r
				}
			}
			if IsExcluded(rel, excludes) {
				continue
			}
			if seen[path] {
				continue
			}

			seen[path] = true
			results = append(results, path)
		}
	}

	return results, nil
}
