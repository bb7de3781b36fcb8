package httpdto

import (
	"time"

	"messagebox/internal/domain/message"
)

// CreateMessageRequest is used for POST /api/message/messages/
type CreateMessageRequest struct {
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content" binding:"required"`
}

// UpdateMessageRequest is used for PATCH /api/message/messages/:id/
type UpdateMessageRequest struct {
	Email      *string `json:"email,omitempty"`
	Name       *string `json:"name,omitempty"`
	Title      *string `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
	IsRecent   *bool   `json:"is_recent,omitempty"`
	IsRead     *bool   `json:"is_read,omitempty"`
	IsAnswered *bool   `json:"is_answered,omitempty"`
	IsBanned   *bool   `json:"is_banned,omitempty"`
}

// MessageSummary is the listing shape
type MessageSummary struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

// MessageDetail is the single-message shape
type MessageDetail struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	IsRecent   bool      `json:"is_recent"`
	IsRead     bool      `json:"is_read"`
	IsAnswered bool      `json:"is_answered"`
	IsBanned   bool      `json:"is_banned"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewMessageSummary(m message.Message) MessageSummary {
	return MessageSummary{
		Email: m.ContactEmail,
		Name:  m.SenderName,
		Title: m.Title,
	}
}

func NewMessageDetail(m message.Message) MessageDetail {
	return MessageDetail{
		ID:         m.ID.String(),
		Email:      m.ContactEmail,
		Name:       m.SenderName,
		Title:      m.Title,
		Content:    m.Content,
		IsRecent:   m.IsRecent,
		IsRead:     m.IsRead,
		IsAnswered: m.IsAnswered,
		IsBanned:   m.IsBanned,
		CreatedAt:  m.CreatedAt,
	}
}
