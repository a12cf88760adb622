package corpus

import (
	"context"
	"time"
)

// StatsReport summarizes the collected corpus. Breakdown maps count every
// scanned recording: missing category or register values fall back to
// "unknown" so the totals always equal the scanned record count.
type StatsReport struct {
	TotalSessions      int            `json:"totalSessions"`
	TotalRecordings    int            `json:"totalRecordings"`
	TotalPlayersUnique int            `json:"totalPlayersUnique"`
	PhraseBreakdown    map[string]int `json:"phraseBreakdown"`
	RegisterBreakdown  map[string]int `json:"registerBreakdown"`
}

// Snapshot is a full in-memory export of every persisted record. Corpus
// sizes are expected to be small enough for full materialization; there is
// no pagination or streaming.
type Snapshot struct {
	ExportedAt string               `json:"exportedAt"`
	Sessions   []*Session           `json:"sessions"`
	Recordings []*RecordingMetadata `json:"recordings"`
}

const unknownValue = "unknown"

func orUnknown(s string) string {
	if s == "" {
		return unknownValue
	}
	return s
}

// Stats recomputes corpus statistics by a full scan of both record
// namespaces. There is no snapshot isolation: records written mid-scan may
// or may not be counted.
func (s *Store) Stats(ctx context.Context) (*StatsReport, error) {
	report := &StatsReport{
		PhraseBreakdown:   make(map[string]int),
		RegisterBreakdown: make(map[string]int),
	}

	sessions, err := s.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	players := make(map[string]struct{})
	for session := range sessions {
		report.TotalSessions++
		players[orUnknown(session.PlayerID)] = struct{}{}
	}
	report.TotalPlayersUnique = len(players)

	recordings, err := s.ListRecordings(ctx)
	if err != nil {
		return nil, err
	}
	for rec := range recordings {
		report.TotalRecordings++
		report.PhraseBreakdown[orUnknown(rec.PhraseCategory)]++
		report.RegisterBreakdown[orUnknown(rec.PhraseRegister)]++
	}
	return report, nil
}

// Export materializes the full corpus as one snapshot, with the same
// read-uncommitted consistency as Stats.
func (s *Store) Export(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Sessions:   []*Session{},
		Recordings: []*RecordingMetadata{},
	}

	sessions, err := s.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	for session := range sessions {
		snap.Sessions = append(snap.Sessions, session)
	}

	recordings, err := s.ListRecordings(ctx)
	if err != nil {
		return nil, err
	}
	for rec := range recordings {
		snap.Recordings = append(snap.Recordings, rec)
	}
	return snap, nil
}
