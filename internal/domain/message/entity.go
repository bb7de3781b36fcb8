package message

import (
	"time"

	"github.com/google/uuid"
)

// Message represents the messages table
type Message struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID      uuid.UUID `gorm:"type:uuid;index;not null"`
	ContactEmail string
	SenderName   string
	Title        string
	Content      string `gorm:"not null"`
	IsRecent     bool
	IsRead       bool
	IsAnswered   bool
	IsBanned     bool
	CreatedAt    time.Time `gorm:"index"`
}

func (Message) TableName() string {
	return "messages"
}
