package dto

import "robotics-tutor-be/pkg/store"

type QueryRequest struct {
	Query     string `json:"query" validate:"required,max=2000"`
	TutorMode bool   `json:"tutor_mode"`
	SessionID string `json:"session_id" validate:"max=128"`
}

type QueryResponse struct {
	Answer        string                 `json:"answer"`
	Sources       []string               `json:"sources"`
	MatchedChunks []store.RetrievedChunk `json:"matched_chunks"`
	Error         string                 `json:"error,omitempty"`
	Status        string                 `json:"status"` // "success" or "error"
	QueryTimeMS   float64                `json:"query_time_ms"`
	Confidence    string                 `json:"confidence,omitempty"`
}

type SessionHistoryResponse struct {
	Messages  []store.ConversationTurn `json:"messages"`
	SessionID string                   `json:"session_id"`
	Count     int                      `json:"count"`
}

type SessionClearedResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
