package request

import (
	"github.com/google/uuid"

	"lendhub/internal/usecase/commands"
)

type ProposeCoordinationRequest struct {
	Mode            string     `json:"mode" binding:"required"`
	Address         string     `json:"address,omitempty"`
	DeliveryPointID *uuid.UUID `json:"delivery_point_id,omitempty"`
	DeliveryWindows []string   `json:"delivery_windows" binding:"required"`
	ReturnWindows   []string   `json:"return_windows" binding:"required"`
}

func (r ProposeCoordinationRequest) ToCommand() commands.ProposeCoordinationRequest {
	return commands.ProposeCoordinationRequest{
		Mode:            r.Mode,
		Address:         r.Address,
		DeliveryPointID: r.DeliveryPointID,
		DeliveryWindows: r.DeliveryWindows,
		ReturnWindows:   r.ReturnWindows,
	}
}

type AcceptWindowRequest struct {
	Kind   string `json:"kind" binding:"required"`
	Window string `json:"window" binding:"required"`
}
