package storage

import (
	"sort"
	"strings"
)

// SetCustomCommand stores content under name, replacing any previous value.
// Names are case-insensitive.
func (s *Storage) SetCustomCommand(guildID, name, content string) error {
	return s.update(guildID, func(r *Record) error {
		r.CustomCommands[strings.ToLower(name)] = content
		return nil
	})
}

func (s *Storage) CustomCommand(guildID, name string) (string, bool, error) {
	record, err := s.view(guildID)
	if err != nil {
		return "", false, err
	}
	content, ok := record.CustomCommands[strings.ToLower(name)]
	return content, ok, nil
}

// RemoveCustomCommand reports whether the command existed.
func (s *Storage) RemoveCustomCommand(guildID, name string) (bool, error) {
	var existed bool
	err := s.update(guildID, func(r *Record) error {
		key := strings.ToLower(name)
		_, existed = r.CustomCommands[key]
		delete(r.CustomCommands, key)
		return nil
	})
	return existed, err
}

// CustomCommandNames returns the guild's custom command names sorted.
func (s *Storage) CustomCommandNames(guildID string) ([]string, error) {
	record, err := s.view(guildID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(record.CustomCommands))
	for name := range record.CustomCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
