package response

import (
	"lendhub/internal/usecase/queries"
)

type NotificationListResponse struct {
	Notifications []queries.NotificationView `json:"notifications"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
