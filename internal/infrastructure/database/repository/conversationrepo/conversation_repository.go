package conversationrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/conversation"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/database/dbschema"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/database/transaction"
	"github.com/miuye256/restaurant-chatbot-backend/internal/utils/functional"
	"github.com/miuye256/restaurant-chatbot-backend/internal/utils/platformerrors"
)

type ConversationGormRepository struct {
	db *transaction.Database
}

var _ conversation.Repository = (*ConversationGormRepository)(nil)

func NewConversationGormRepository(db *transaction.Database) conversation.Repository {
	return &ConversationGormRepository{db}
}

// Create implements conversation.Repository. The conversation row and its seed
// messages are written in one transaction.
func (repo *ConversationGormRepository) Create(ctx context.Context, conv *conversation.Conversation, seed []*conversation.Message) error {
	err := repo.db.Transaction(ctx, func(txCtx context.Context) error {
		tx := repo.db.GetTx(txCtx)

		model := dbschema.NewSchemaConversation(conv)
		if err := tx.WithContext(txCtx).Create(model).Error; err != nil {
			return err
		}
		conv.ID = model.ID
		conv.CreatedAt = model.CreatedAt
		conv.UpdatedAt = model.UpdatedAt

		for _, msg := range seed {
			msg.ConversationID = model.ID
			msgModel := dbschema.NewSchemaMessage(msg)
			if err := tx.WithContext(txCtx).Create(msgModel).Error; err != nil {
				return err
			}
			msg.ID = msgModel.ID
			msg.CreatedAt = msgModel.CreatedAt
		}
		return nil
	})
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create conversation")
	}
	return nil
}

// FindByPublicID implements conversation.Repository.
func (repo *ConversationGormRepository) FindByPublicID(ctx context.Context, publicID string) (*conversation.Conversation, error) {
	var model dbschema.Conversation
	err := repo.db.GetTx(ctx).WithContext(ctx).Where("public_id = ?", publicID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "conversation not found", err, "7e2c5d18-4f6a-4b3c-9d0e-1a2b3c4d5e6f")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find conversation by public ID")
	}
	return model.EtoD(), nil
}

// AddMessage implements conversation.Repository.
func (repo *ConversationGormRepository) AddMessage(ctx context.Context, conversationID uint, msg *conversation.Message) error {
	msg.ConversationID = conversationID
	model := dbschema.NewSchemaMessage(msg)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(model).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to add message")
	}
	msg.ID = model.ID
	msg.CreatedAt = model.CreatedAt
	return nil
}

// ListMessages implements conversation.Repository. Messages come back in
// creation order.
func (repo *ConversationGormRepository) ListMessages(ctx context.Context, conversationID uint) ([]*conversation.Message, error) {
	var models []*dbschema.Message
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list messages")
	}

	return functional.Map(models, func(m *dbschema.Message) *conversation.Message {
		return m.EtoD()
	}), nil
}
