//go:build mage

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// docFiles are the markdown documents counted by Stats.
var docFiles = []string{"README.md", "DESIGN.md"}

// Stats prints Go lines of code per top-level directory and documentation
// word counts as one JSON record.
func Stats() error {
	prod := map[string]int{}
	var testLines int

	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			switch {
			case path == ".":
				return nil
			case path == binaryDir, path == "magefiles", strings.HasPrefix(d.Name(), "."), strings.HasPrefix(d.Name(), "_"):
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		count, countErr := countLines(path)
		if countErr != nil {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") {
			testLines += count
			return nil
		}
		prod[topDir(path)] += count
		return nil
	})
	if err != nil {
		return err
	}

	var prodLines int
	for _, n := range prod {
		prodLines += n
	}

	docWords := 0
	for _, path := range docFiles {
		words, err := countWordsInFile(path)
		if err != nil {
			continue
		}
		docWords += words
	}

	record := map[string]any{
		"go_loc_prod":   prodLines,
		"go_loc_test":   testLines,
		"go_loc":        prodLines + testLines,
		"go_loc_by_dir": prod,
		"doc_words":     docWords,
	}
	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	fmt.Println(string(line))
	return nil
}

// topDir returns the first path element, or "." for files at the root.
func topDir(path string) string {
	if i := strings.IndexRune(path, filepath.Separator); i >= 0 {
		return path[:i]
	}
	return "."
}

// countLines counts newline-terminated lines, plus a trailing partial line.
func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	n := bytes.Count(data, []byte{'\n'})
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n, nil
}

func countWordsInFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return len(strings.Fields(string(data))), nil
}
