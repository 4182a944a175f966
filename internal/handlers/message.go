package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/pena-club/pena-api/internal/auth"
	"github.com/pena-club/pena-api/internal/models"
	"gorm.io/gorm"
)

type MessageHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewMessageHandler(db *gorm.DB, authHandler *auth.AuthHandler) *MessageHandler {
	return &MessageHandler{db: db, authHandler: authHandler}
}

type ListMessagesInput struct {
	auth.AuthInput
	EventID string `path:"eventId"`
}

type ListMessagesOutput struct {
	Body []models.Message
}

func (h *MessageHandler) HandleListMessages(ctx context.Context, input *ListMessagesInput) (*ListMessagesOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	var messages []models.Message
	if err := h.db.Preload("User").Where("event_id = ?", input.EventID).Order("created_at").Find(&messages).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list messages: " + err.Error())
	}

	return &ListMessagesOutput{Body: messages}, nil
}

type SendMessageInput struct {
	auth.AuthInput
	Body struct {
		EventID string `json:"eventId" required:"true"`
		Content string `json:"content" required:"true" minLength:"1"`
	}
}

type SendMessageOutput struct {
	Body models.Message
}

func (h *MessageHandler) HandleSendMessage(ctx context.Context, input *SendMessageInput) (*SendMessageOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	message := models.Message{
		EventID: input.Body.EventID,
		UserID:  userID,
		Content: input.Body.Content,
	}
	if err := h.db.Create(&message).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create message: " + err.Error())
	}
	if err := h.db.Preload("User").First(&message, "id = ?", message.ID).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to load message: " + err.Error())
	}

	return &SendMessageOutput{Body: message}, nil
}
