// Package keywords reads and edits the keyword file: an .ini file of
// keyword=replacement pairs grouped into sections. Sections only organize
// the file; every pair applies everywhere.
package keywords

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// FileName is the keyword file looked for next to the executable.
const FileName = "obfuscate-logs.ini"

const template = `# This file contains keyword=replacement pairs organized by sections.
[servers]
server1=generic_server1
server2=generic_server2

[users]
admin=generic_admin
guest=generic_guest

[general]
password=obfuscated_password
email=obfuscated_email
`

// Entry is one keyword pair as written in the file.
type Entry struct {
	Section     string
	Keyword     string
	Replacement string
}

// Set is the loaded content of a keyword file.
type Set struct {
	Path string
	// Entries holds the first occurrence of each keyword, compared
	// case-insensitively, in file order.
	Entries []Entry
	// Duplicates holds later occurrences that were dropped.
	Duplicates []Entry
}

// Map returns lowercased keyword -> replacement.
func (s *Set) Map() map[string]string {
	m := make(map[string]string, len(s.Entries))
	for _, e := range s.Entries {
		m[strings.ToLower(e.Keyword)] = e.Replacement
	}
	return m
}

// Len returns the number of unique keywords.
func (s *Set) Len() int {
	return len(s.Entries)
}

// DefaultPath returns FileName in the executable's directory.
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), FileName), nil
}

func loadOptions() ini.LoadOptions {
	return ini.LoadOptions{
		// "a=b # c" keeps "b # c" as the value.
		IgnoreInlineComment: true,
		// Quotes and trailing backslashes are part of the replacement.
		PreserveSurroundedQuote:   true,
		UnescapeValueDoubleQuotes: false,
		IgnoreContinuation:        true,
	}
}

// Load reads the keyword file at path. A missing file is replaced by the
// default template and an empty Set is returned with created set to true.
func Load(path string) (set *Set, created bool, err error) {
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		if err := WriteTemplate(path); err != nil {
			return &Set{Path: path}, false, err
		}
		return &Set{Path: path}, true, nil
	}

	set, err = Read(path)
	return set, false, err
}

// Read parses the keyword file at path without creating it. A missing file
// yields an empty Set and an error matching os.ErrNotExist.
func Read(path string) (*Set, error) {
	set := &Set{Path: path}

	if _, err := os.Stat(path); err != nil {
		return set, fmt.Errorf("keyword file %s: %w", path, err)
	}
	f, err := ini.LoadSources(loadOptions(), path)
	if err != nil {
		return set, fmt.Errorf("parse keyword file %s: %w", path, err)
	}

	seen := make(map[string]bool)
	for _, sec := range f.Sections() {
		for _, key := range sec.Keys() {
			entry := Entry{
				Section:     sec.Name(),
				Keyword:     strings.TrimSpace(key.Name()),
				Replacement: strings.TrimSpace(key.Value()),
			}
			lower := strings.ToLower(entry.Keyword)
			if lower == "" {
				continue
			}
			if seen[lower] {
				set.Duplicates = append(set.Duplicates, entry)
				continue
			}
			seen[lower] = true
			set.Entries = append(set.Entries, entry)
		}
	}
	return set, nil
}

// WriteTemplate writes the default keyword file to path.
func WriteTemplate(path string) error {
	if err := os.WriteFile(path, []byte(template), 0644); err != nil {
		return fmt.Errorf("create keyword file %s: %w", path, err)
	}
	return nil
}

// Add sets keyword=replacement in section, creating file and section as
// needed. It fails if the keyword already exists in any section.
func Add(path, section, keyword, replacement string) error {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return errors.New("keyword must not be empty")
	}
	if section == "" {
		section = "general"
	}

	f, err := openForEdit(path)
	if err != nil {
		return err
	}
	if sec, key := find(f, keyword); key != nil {
		return fmt.Errorf("keyword %q already defined in section [%s]", key.Name(), sec.Name())
	}
	if _, err := f.Section(section).NewKey(keyword, replacement); err != nil {
		return fmt.Errorf("add keyword %q: %w", keyword, err)
	}
	return f.SaveTo(path)
}

// Remove deletes every occurrence of keyword, compared case-insensitively.
// It reports whether anything was removed.
func Remove(path, keyword string) (bool, error) {
	f, err := ini.LoadSources(loadOptions(), path)
	if err != nil {
		return false, fmt.Errorf("parse keyword file %s: %w", path, err)
	}

	removed := false
	for {
		sec, key := find(f, keyword)
		if key == nil {
			break
		}
		sec.DeleteKey(key.Name())
		removed = true
	}
	if !removed {
		return false, nil
	}
	return true, f.SaveTo(path)
}

func openForEdit(path string) (*ini.File, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return ini.Empty(loadOptions()), nil
	}
	f, err := ini.LoadSources(loadOptions(), path)
	if err != nil {
		return nil, fmt.Errorf("parse keyword file %s: %w", path, err)
	}
	return f, nil
}

func find(f *ini.File, keyword string) (*ini.Section, *ini.Key) {
	want := strings.ToLower(strings.TrimSpace(keyword))
	for _, sec := range f.Sections() {
		for _, key := range sec.Keys() {
			if strings.ToLower(strings.TrimSpace(key.Name())) == want {
				return sec, key
			}
		}
	}
	return nil, nil
}
