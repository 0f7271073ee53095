package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"lendhub/internal/pkg/errs"
)

const maxMessageLen = 240

// Message is one chat line inside a rental conversation.
type Message struct {
	ID       uuid.UUID
	RentalID uuid.UUID
	SenderID uuid.UUID
	Body     string
	SentAt   time.Time
}

// NewMessage validates and filters the body before a message exists at
// all; there is no way to construct one that violates the policy.
func NewMessage(rentalID, senderID uuid.UUID, body string, now time.Time) (*Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errs.Category(errs.New("message body is empty"), errs.ErrValidation)
	}
	if len(body) > maxMessageLen {
		return nil, errs.Category(errs.New("message exceeds 240 characters"), errs.ErrValidation)
	}
	if reason, ok := Screen(body); !ok {
		err := errs.Category(errs.Newf("message rejected: %s", reason), errs.ErrValidation)
		return nil, errs.Category(err, errs.ErrMessageRejected)
	}

	return &Message{
		ID:       uuid.New(),
		RentalID: rentalID,
		SenderID: senderID,
		Body:     body,
		SentAt:   now,
	}, nil
}
