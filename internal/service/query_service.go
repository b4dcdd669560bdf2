package service

import (
	"context"
	"fmt"
	"log"

	"robotics-tutor-be/internal/dto"
	"robotics-tutor-be/pkg/events"
	"robotics-tutor-be/pkg/rag/executor"
	"robotics-tutor-be/pkg/rag/session"
	"robotics-tutor-be/pkg/store"
)

type IQueryService interface {
	ProcessQuery(ctx context.Context, req *dto.QueryRequest) *dto.QueryResponse
	ProcessSessionMessage(ctx context.Context, sessionID string, req *dto.QueryRequest) *dto.QueryResponse
	GetSessionHistory(sessionID string) *dto.SessionHistoryResponse
	ClearSession(ctx context.Context, sessionID string) *dto.SessionClearedResponse
}

type queryService struct {
	pipeline         *executor.Pipeline
	sessions         *session.Manager
	publisherService IPublisherService
}

func NewQueryService(
	pipeline *executor.Pipeline,
	sessions *session.Manager,
	publisherService IPublisherService,
) IQueryService {
	return &queryService{
		pipeline:         pipeline,
		sessions:         sessions,
		publisherService: publisherService,
	}
}

// ProcessQuery never propagates a failure to the transport: anything that
// escapes the pipeline degrades to a fixed apology with the error string
// carried in the body.
func (s *queryService) ProcessQuery(ctx context.Context, req *dto.QueryRequest) (res *dto.QueryResponse) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] Query handling failed: %v", r)
			res = &dto.QueryResponse{
				Answer:        "I'm having trouble processing your request. Please try again or contact support if the issue persists.",
				Sources:       []string{},
				MatchedChunks: []store.RetrievedChunk{},
				Error:         fmt.Sprintf("Internal server error: %v", r),
				Status:        "error",
			}
		}
	}()

	result := s.pipeline.Process(ctx, req.Query, req.TutorMode, req.SessionID)

	s.publishUsage(ctx, req.SessionID, req.TutorMode, result)

	status := "success"
	if result.Err != "" {
		status = "error"
	}

	return &dto.QueryResponse{
		Answer:        result.Answer,
		Sources:       result.Sources,
		MatchedChunks: result.MatchedChunks,
		Error:         result.Err,
		Status:        status,
		QueryTimeMS:   result.QueryTimeMS,
		Confidence:    string(result.Confidence),
	}
}

// ProcessSessionMessage routes a query through a session named by the path,
// overriding any session id carried in the body.
func (s *queryService) ProcessSessionMessage(ctx context.Context, sessionID string, req *dto.QueryRequest) *dto.QueryResponse {
	scoped := *req
	scoped.SessionID = sessionID
	return s.ProcessQuery(ctx, &scoped)
}

func (s *queryService) GetSessionHistory(sessionID string) *dto.SessionHistoryResponse {
	turns := s.sessions.Transcript(sessionID)
	if turns == nil {
		turns = []store.ConversationTurn{}
	}
	return &dto.SessionHistoryResponse{
		Messages:  turns,
		SessionID: sessionID,
		Count:     len(turns),
	}
}

func (s *queryService) ClearSession(ctx context.Context, sessionID string) *dto.SessionClearedResponse {
	existed := s.sessions.Clear(sessionID)

	if err := s.publisherService.PublishEvent(ctx, events.NewSessionClearedEvent(sessionID, existed)); err != nil {
		log.Printf("[WARN] Failed to publish session cleared event: %v", err)
	}

	message := fmt.Sprintf("Session %s did not exist", sessionID)
	if existed {
		message = fmt.Sprintf("Session %s cleared", sessionID)
	}
	return &dto.SessionClearedResponse{
		Status:  "success",
		Message: message,
	}
}

func (s *queryService) publishUsage(ctx context.Context, sessionID string, tutorMode bool, result *executor.Result) {
	evt := events.NewQueryProcessedEvent(
		sessionID,
		string(result.IntentData.PrimaryIntent),
		string(result.Confidence),
		tutorMode,
		len(result.MatchedChunks),
		result.QueryTimeMS,
	)
	if err := s.publisherService.PublishEvent(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish usage event: %v", err)
	}
}
