package chat

import (
	"context"
	"io"

	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/conversation"
)

// EventType discriminates stream events.
type EventType string

const (
	EventContent  EventType = "content"
	EventFinished EventType = "finished"
)

// Event is one unit pulled from a Stream: either a content fragment or the
// terminal finished marker.
type Event struct {
	Type    EventType
	Content string
}

// TranscriptAppender persists the assistant turn once the full answer has been
// emitted. *conversation.Service satisfies it.
type TranscriptAppender interface {
	Append(ctx context.Context, publicID string, role conversation.Role, content string) (*conversation.Message, error)
}

// Stream emits a resolved answer as ordered sentence fragments. It is
// pull-based: each Next call cuts the next fragment; after the last fragment
// the full answer is persisted as the assistant turn, then the finished event
// is emitted, then io.EOF. The answer is stored exactly once, and only after
// every fragment of it has been handed to the caller.
type Stream struct {
	ctx            context.Context
	segmenter      Segmenter
	appender       TranscriptAppender
	conversationID string
	answer         string
	rest           string
	persisted      bool
	finished       bool
}

// NewStream prepares a stream over the given answer. Nothing is emitted or
// persisted until the caller starts pulling.
func NewStream(ctx context.Context, segmenter Segmenter, appender TranscriptAppender, conversationID, answer string) *Stream {
	return &Stream{
		ctx:            ctx,
		segmenter:      segmenter,
		appender:       appender,
		conversationID: conversationID,
		answer:         answer,
		rest:           answer,
	}
}

// Next returns the next event. A persistence failure surfaces as an error
// before the finished event; the finished event is emitted only when the
// assistant turn has been stored.
func (s *Stream) Next() (Event, error) {
	if s.finished {
		return Event{}, io.EOF
	}

	if s.rest != "" {
		var frag string
		frag, s.rest = s.segmenter.Cut(s.rest)
		return Event{Type: EventContent, Content: frag}, nil
	}

	if !s.persisted {
		if _, err := s.appender.Append(s.ctx, s.conversationID, conversation.RoleAssistant, s.answer); err != nil {
			return Event{}, err
		}
		s.persisted = true
	}

	s.finished = true
	return Event{Type: EventFinished}, nil
}
