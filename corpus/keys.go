package corpus

import (
	"strings"
	"time"
)

// Storage key layout, partitioned by record kind and session:
//
//	audio/{sessionId}/{phraseId}_{timestamp}.webm
//	sessions/{sessionId}.json
//	metadata/{sessionId}/{phraseId}_{timestamp}.json
//
// Keys are deterministic functions of their inputs so repeated uploads
// never collide as long as timestamps differ. The aggregation engine
// enumerates records by prefix scan over this layout instead of an index.

const (
	sessionPrefix  = "sessions/"
	metadataPrefix = "metadata/"
	audioPrefix    = "audio/"

	audioExt = ".webm"
)

// SessionKey returns the storage key for a session record.
func SessionKey(id string) string {
	return sessionPrefix + id + ".json"
}

// MetadataKey returns the storage key for a recording metadata record. The
// timestamp has its colons replaced so the key stays filesystem-safe.
func MetadataKey(sessionID, phraseID, timestamp string) string {
	return metadataPrefix + sessionID + "/" + phraseID + "_" + sanitizeTimestamp(timestamp) + ".json"
}

// AudioKey returns the storage key for an audio artifact.
func AudioKey(sessionID, filename string) string {
	return audioPrefix + sessionID + "/" + filename
}

// AudioFilename derives the artifact filename for a recording from its
// phrase ID and the upload time, at second resolution.
func AudioFilename(phraseID string, now time.Time) string {
	return phraseID + "_" + now.UTC().Format("20060102_150405") + audioExt
}

func sanitizeTimestamp(ts string) string {
	return strings.ReplaceAll(ts, ":", "-")
}
