package response

import (
	"time"

	"github.com/google/uuid"

	"lendhub/internal/domain/chat"
	"lendhub/internal/usecase/queries"
)

type MessageResponse struct {
	ID       uuid.UUID `json:"id"`
	RentalID uuid.UUID `json:"rental_id"`
	SenderID uuid.UUID `json:"sender_id"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sent_at"`
}

type MessageListResponse struct {
	Messages []queries.MessageView `json:"messages"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

func FromMessage(m *chat.Message) *MessageResponse {
	return &MessageResponse{
		ID:       m.ID,
		RentalID: m.RentalID,
		SenderID: m.SenderID,
		Body:     m.Body,
		SentAt:   m.SentAt,
	}
}
