package request

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"lendhub/internal/usecase/commands"
)

type CreateRentalRequest struct {
	ArticleID uuid.UUID `json:"article_id" binding:"required"`
	StartsAt  time.Time `json:"starts_at" binding:"required"`
	EndsAt    time.Time `json:"ends_at" binding:"required"`
}

func (r CreateRentalRequest) ToCommand() commands.CreateRentalRequest {
	return commands.CreateRentalRequest{
		ArticleID: r.ArticleID,
		Start:     r.StartsAt,
		End:       r.EndsAt,
	}
}

type CancelRentalRequest struct {
	Note string `json:"note,omitempty"`
}

type ConfirmOTPRequest struct {
	Code      string `json:"code" binding:"required"`
	Checklist string `json:"checklist,omitempty"`
}

type ReportIncidentRequest struct {
	Description string `json:"description,omitempty"`
}

type ResolveIncidentRequest struct {
	Decision      string `json:"decision" binding:"required"`
	RetainedCents *int64 `json:"retained_cents,omitempty"`
	Note          string `json:"note,omitempty"`
}

func (r ResolveIncidentRequest) ToCommand() commands.ResolveIncidentRequest {
	return commands.ResolveIncidentRequest{
		Decision:      strings.TrimSpace(r.Decision),
		RetainedCents: r.RetainedCents,
		Note:          strings.TrimSpace(r.Note),
	}
}
