package events

import "time"

const (
	TypeQueryProcessed = "QUERY_PROCESSED"
	TypeSessionCleared = "SESSION_CLEARED"
)

// NewQueryProcessedEvent records one completed pipeline turn.
func NewQueryProcessedEvent(sessionID, primaryIntent, confidence string, tutorMode bool, matchedChunks int, queryTimeMS float64) Event {
	return BaseEvent{
		Type: TypeQueryProcessed,
		Data: map[string]interface{}{
			"session_id":     sessionID,
			"primary_intent": primaryIntent,
			"confidence":     confidence,
			"tutor_mode":     tutorMode,
			"matched_chunks": matchedChunks,
			"query_time_ms":  queryTimeMS,
		},
		OccurredAt: time.Now(),
	}
}

// NewSessionClearedEvent records an explicit session reset.
func NewSessionClearedEvent(sessionID string, existed bool) Event {
	return BaseEvent{
		Type: TypeSessionCleared,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"existed":    existed,
		},
		OccurredAt: time.Now(),
	}
}
