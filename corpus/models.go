// Package corpus implements the record store, ingestion, and aggregation
// engine for collected gameplay sessions and voice recordings.
package corpus

// Session is one completed play session as reported by the client. A later
// write with the same ID overwrites the earlier record; there is no merge.
type Session struct {
	ID                     string   `json:"id"`
	PlayerID               string   `json:"playerId"`
	DeviceType             string   `json:"deviceType,omitempty"`
	Browser                string   `json:"browser,omitempty"`
	DemographicAgeRange    string   `json:"demographicAgeRange,omitempty"`
	DemographicParish      string   `json:"demographicParish,omitempty"`
	DemographicPatoisFirst string   `json:"demographicPatoisFirst,omitempty"`
	CalibrationPhrases     []string `json:"calibrationPhrases"`
	TotalPhrasesAttempted  int      `json:"totalPhrasesAttempted"`
	TotalPhrasesSucceeded  int      `json:"totalPhrasesSucceeded"`
	FinalScore             int      `json:"finalScore"`
	MaxLevelReached        int      `json:"maxLevelReached"`
	BestCombo              int      `json:"bestCombo"`
	SessionDurationSeconds int      `json:"sessionDurationSeconds"`
	TimestampStart         string   `json:"timestampStart"`
	// TimestampEnd is empty when the session was recorded before completion.
	TimestampEnd string `json:"timestampEnd,omitempty"`
}

// RecordingMetadata describes one spoken attempt at a phrase within a
// session. Repeated attempts at the same phrase are distinct records keyed
// by timestamp; nothing deduplicates them. The SessionID reference is a
// logical foreign key only — a recording may exist for a session that was
// never fully persisted.
type RecordingMetadata struct {
	SessionID                     string   `json:"sessionId"`
	PhraseID                      string   `json:"phraseId"`
	PhraseText                    string   `json:"phraseText"`
	PhraseTier                    int      `json:"phraseTier"`
	PhraseCategory                string   `json:"phraseCategory"`
	PhraseRegister                string   `json:"phraseRegister"`
	GameLevel                     int      `json:"gameLevel"`
	GameSpeed                     float64  `json:"gameSpeed"`
	ObstacleDistanceAtSpeechStart float64  `json:"obstacleDistanceAtSpeechStart"`
	TimeToSpeechOnsetMs           int      `json:"timeToSpeechOnsetMs"`
	SpeechDurationMs              int      `json:"speechDurationMs"`
	Outcome                       string   `json:"outcome"`
	ScoreAwarded                  int      `json:"scoreAwarded"`
	ComboMultiplier               float64  `json:"comboMultiplier"`
	AudioPeakAmplitude            *float64 `json:"audioPeakAmplitude,omitempty"`
	AudioClippingDetected         bool     `json:"audioClippingDetected"`
	TimestampUTC                  string   `json:"timestampUtc"`

	// AudioPath is the backend locator of the owned audio artifact,
	// filled in when the metadata is persisted. Empty when the recording
	// carries no audio.
	AudioPath string `json:"audioPath,omitempty"`
}
