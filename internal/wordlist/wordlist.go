// ============================================================================
// Spell Gym - Audio spelling drill
// ============================================================================
//
// Package:     wordlist
// Description: Word list loading and sampling
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

// Package wordlist loads spelling words from a directory of list files.
//
// Text lists (.txt) hold one word per line. Accepted alternative spellings
// are joined with " OR ":
//
//	color OR colour
//	# comments and blank lines are ignored
//
// YAML lists (.yaml, .yml) hold a words sequence of scalars or mappings:
//
//	words:
//	  - cat
//	  - word: color
//	    variants: [colour]
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoWords is returned when a source yields no entries
	ErrNoWords = errors.New("no words found")

	// ErrListNotFound is returned when a named list does not exist
	ErrListNotFound = errors.New("word list not found")

	// ErrNotEnoughWords is returned when more rounds are requested than words exist
	ErrNotEnoughWords = errors.New("not enough words")
)

// Extensions are the list file extensions, in lookup order
var Extensions = []string{".txt", ".yaml", ".yml"}

// yamlFile is the YAML list layout
type yamlFile struct {
	Words []Entry `yaml:"words"`
}

// ListInfo describes one list file
type ListInfo struct {
	Name  string
	Path  string
	Words int
}

// LoadDir loads every list file in dir, in file name order
func LoadDir(dir string) ([]Entry, error) {
	files, err := listFiles(dir)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, path := range files {
		loaded, err := parseFile(path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, loaded...)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoWords, dir)
	}
	return entries, nil
}

// LoadFile loads the list called name from dir. The extension is optional.
func LoadFile(dir, name string) ([]Entry, error) {
	path, err := resolve(dir, name)
	if err != nil {
		return nil, err
	}

	entries, err := parseFile(path)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoWords, path)
	}
	return entries, nil
}

// Lists enumerates the list files in dir with their word counts
func Lists(dir string) ([]ListInfo, error) {
	files, err := listFiles(dir)
	if err != nil {
		return nil, err
	}

	infos := make([]ListInfo, 0, len(files))
	for _, path := range files {
		entries, err := parseFile(path)
		if err != nil {
			return nil, err
		}
		base := filepath.Base(path)
		infos = append(infos, ListInfo{
			Name:  strings.TrimSuffix(base, filepath.Ext(base)),
			Path:  path,
			Words: len(entries),
		})
	}
	return infos, nil
}

// Sample returns n entries drawn without replacement in random order
func Sample(entries []Entry, n int, rng *rand.Rand) ([]Entry, error) {
	if n > len(entries) {
		return nil, fmt.Errorf("%w: need at least %d, found %d", ErrNotEnoughWords, n, len(entries))
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	out := make([]Entry, 0, n)
	for _, i := range rng.Perm(len(entries))[:n] {
		out = append(out, entries[i])
	}
	return out, nil
}

func listFiles(dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: directory %s", ErrNoWords, dir)
		}
		return nil, fmt.Errorf("failed to read list directory: %w", err)
	}

	var files []string
	for _, de := range dirEntries {
		if de.IsDir() || !isListFile(de.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, de.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func isListFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func resolve(dir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: %q", ErrListNotFound, name)
	}

	candidates := []string{name}
	if !isListFile(name) {
		candidates = candidates[:0]
		for _, ext := range Extensions {
			candidates = append(candidates, name+ext)
		}
	}

	for _, c := range candidates {
		path := filepath.Join(dir, c)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s in %s", ErrListNotFound, name, dir)
}

func parseFile(path string) ([]Entry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(path)
	default:
		return parseText(path)
	}
}

func parseText(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open list: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if e, ok := ParseLine(scanner.Text()); ok {
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return entries, nil
}

func parseYAML(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read list: %w", err)
	}

	var doc yamlFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc.Words, nil
}
