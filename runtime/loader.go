// Package runtime handles the infrastructure-level tasks like loading keyword files,
// holding the pond state and scheduling the frogs' return to idle.
package runtime

import (
	"bufio"
	"bytes"
	"embed"
	"frog-pond/errors"
	"frog-pond/reaction"
	"io/fs"
	"path"
	"strings"
)

// KeywordLoader reads trigger keywords from embedded files.
// Each file is named after its trigger ("food.txt" -> food) and holds one keyword per line.
type KeywordLoader struct {
	fs embed.FS
}

func NewKeywordLoader(f embed.FS) *KeywordLoader {
	return &KeywordLoader{fs: f}
}

// LoadAll parses every .txt file of the directory into a keyword map.
func (l *KeywordLoader) LoadAll(dir string) (map[reaction.Trigger][]string, error) {
	entries, err := fs.ReadDir(l.fs, dir)
	if err != nil {
		return nil, err
	}

	keywords := make(map[reaction.Trigger][]string)
	total := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		trigger := reaction.Trigger(strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := l.fs.ReadFile(path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		// Use a scanner to handle different line endings (\n vs \r\n) correctly
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				keywords[trigger] = append(keywords[trigger], line)
				total++
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if total == 0 {
		return nil, errors.ErrEmptyKeywords
	}
	return keywords, nil
}
