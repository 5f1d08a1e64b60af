package models

import (
	"sort"
	"sync"
	"time"
)

// StateManager holds the latest profile and daily log loaded from disk. Readers
// get copies, so the engine never sees a value that is being replaced.
type StateManager struct {
	mu      sync.RWMutex
	profile UserProfile
	sources map[string][]DailyEntry
	daily   map[string]DailyEntry
}

func (s *StateManager) UpdateProfile(p UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
}

// UpdateDaily replaces every entry previously loaded from source with
// entries. Within a source a later entry for the same day wins; across sources
// the one sorting last wins.
func (s *StateManager) UpdateDaily(source string, entries []DailyEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sources == nil {
		s.sources = make(map[string][]DailyEntry)
	}
	s.sources[source] = append([]DailyEntry(nil), entries...)
	s.reindex()
}

// RemoveDaily drops every entry loaded from source.
func (s *StateManager) RemoveDaily(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sources, source)
	s.reindex()
}

func (s *StateManager) reindex() {
	names := make([]string, 0, len(s.sources))
	for name := range s.sources {
		names = append(names, name)
	}
	sort.Strings(names)

	s.daily = make(map[string]DailyEntry)
	for _, name := range names {
		for _, e := range s.sources[name] {
			s.daily[DateKey(e.Date)] = e
		}
	}
}

func (s *StateManager) Profile() UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// StatusFor returns the status logged on day, if any.
func (s *StateManager) StatusFor(day time.Time) (*DailyStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.daily[DateKey(day)]
	if !ok {
		return nil, false
	}
	status := e.Status
	return &status, true
}

// Entries returns the log sorted by date.
func (s *StateManager) Entries() []DailyEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]DailyEntry, 0, len(s.daily))
	for _, e := range s.daily {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
