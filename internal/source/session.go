package source

import (
	"slices"

	"github.com/google/uuid"
)

// Session tracks the changes one driver run makes to a Cache.
//
// Cache and diagnostics sinks may persist across driver runs; a Session
// does not. Sources the driver loads before the tool starts are "loaded";
// sources the tool inserts through Cache.AddSource are "added".
type Session struct {
	runID      string
	fromDriver []ID
	fromTool   []ID
	kinds      map[ID]Kind
}

func newSession() *Session {
	return &Session{
		runID: uuid.NewString(),
		kinds: make(map[ID]Kind),
	}
}

// RunID identifies the driver run the session belongs to.
func (s *Session) RunID() string {
	return s.runID
}

// LoadedSourceIDs returns the IDs the driver produced before running the tool.
func (s *Session) LoadedSourceIDs() []ID {
	return slices.Clone(s.fromDriver)
}

// AddedSourceIDs returns the IDs the tool produced through Cache.AddSource.
func (s *Session) AddedSourceIDs() []ID {
	return slices.Clone(s.fromTool)
}

// Kind returns the tag recorded for id. Loaded sources report KindLoaded.
func (s *Session) Kind(id ID) (Kind, bool) {
	k, ok := s.kinds[id]
	return k, ok
}

// Len returns the total number of sources recorded.
func (s *Session) Len() int {
	return len(s.fromDriver) + len(s.fromTool)
}

func (s *Session) loadSourceID(id ID) {
	s.fromDriver = append(s.fromDriver, id)
	s.kinds[id] = KindLoaded
}

func (s *Session) addSourceID(id ID, kind Kind) {
	s.fromTool = append(s.fromTool, id)
	s.kinds[id] = kind
}
