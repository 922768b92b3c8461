package conversation

import (
	"context"
	"sync"

	"github.com/miuye256/restaurant-chatbot-backend/internal/utils/idgen"
	"github.com/miuye256/restaurant-chatbot-backend/internal/utils/platformerrors"
)

// SeedMessage is a role/content pair seeded atomically with conversation creation.
type SeedMessage struct {
	Role    Role
	Content string
}

// Service is the transcript state machine. It owns message ordering: appends to
// the same conversation are serialized through a per-conversation mutex so two
// interleaved turns can never produce an interleaved transcript. Distinct
// conversations share no state and proceed fully in parallel.
type Service struct {
	repo  Repository
	locks sync.Map // conversation public ID -> *sync.Mutex
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) lockFor(publicID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(publicID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Create stores a new conversation, seeding the given messages in order as part
// of the same transaction.
func (s *Service) Create(ctx context.Context, seed []SeedMessage) (*Conversation, error) {
	publicID, err := idgen.GenerateSecureID("conv", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate conversation id")
	}

	conv := &Conversation{PublicID: publicID}
	messages := make([]*Message, 0, len(seed))
	for _, m := range seed {
		if !m.Role.Valid() {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "invalid seed message role", nil, "c1a9f9a2-17d0-4b56-90b7-2f4d6e2a9e11")
		}
		msgID, err := idgen.GenerateSecureID("msg", 16)
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate message id")
		}
		messages = append(messages, &Message{PublicID: msgID, Role: m.Role, Content: m.Content})
	}

	if err := s.repo.Create(ctx, conv, messages); err != nil {
		return nil, err
	}
	return conv, nil
}

// Find returns the conversation for the given public id, or a NOT_FOUND error.
func (s *Service) Find(ctx context.Context, publicID string) (*Conversation, error) {
	return s.repo.FindByPublicID(ctx, publicID)
}

// Append adds one turn to the conversation. Appends against the same
// conversation id are serialized; the id must exist.
func (s *Service) Append(ctx context.Context, publicID string, role Role, content string) (*Message, error) {
	if !role.Valid() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "invalid message role", nil, "5d2b8c3e-60af-4f02-8a4d-9b1e7c5f3a20")
	}

	mu := s.lockFor(publicID)
	mu.Lock()
	defer mu.Unlock()

	conv, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	msgID, err := idgen.GenerateSecureID("msg", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate message id")
	}

	msg := &Message{PublicID: msgID, Role: role, Content: content}
	if err := s.repo.AddMessage(ctx, conv.ID, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// History returns all messages of the conversation in creation order.
func (s *Service) History(ctx context.Context, publicID string) ([]*Message, error) {
	conv, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListMessages(ctx, conv.ID)
}
