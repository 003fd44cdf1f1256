// Package logging sets up console logging and keeps the per-list change
// history journal.
package logging

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
)

const historyFileName = "history.jsonl"

// HistoryDir returns the journal directory for a tasks file:
// <baseDir>/<slug>-<hash>, where slug and hash derive from the absolute
// tasks file path.
func HistoryDir(baseDir, todoPath string) (string, error) {
	if baseDir == "" {
		return "", fmt.Errorf("log base dir is empty")
	}
	if todoPath == "" {
		return "", fmt.Errorf("tasks file path is empty")
	}

	absTodo, err := filepath.Abs(todoPath)
	if err != nil {
		return "", fmt.Errorf("resolve tasks file: %w", err)
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("resolve log dir: %w", err)
	}
	return filepath.Join(absBase, listSlug(absTodo)), nil
}

// HistoryPath returns the journal file for a tasks file.
func HistoryPath(baseDir, todoPath string) (string, error) {
	dir, err := HistoryDir(baseDir, todoPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, historyFileName), nil
}

func listSlug(todoPath string) string {
	name := strings.TrimSuffix(filepath.Base(todoPath), filepath.Ext(todoPath))
	return fmt.Sprintf("%s-%s", slugify(name), hashPath(todoPath))
}

func slugify(input string) string {
	if strings.TrimSpace(input) == "" {
		return "tasks"
	}

	var b strings.Builder
	lastUnderscore := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteByte(c)
		lastUnderscore = false
	}

	slug := strings.Trim(b.String(), "_.")
	if slug == "" {
		return "tasks"
	}
	return slug
}

func hashPath(input string) string {
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:])[:8]
}
