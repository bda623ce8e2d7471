package dto

import "time"

type PurchaseContentRequestDTO struct {
	AuthorID      int    `json:"author_id" validate:"required,gt=0" example:"3"`
	ContentID     int    `json:"content_id" validate:"required,gt=0" example:"300"`
	Amount        int64  `json:"amount" validate:"gte=0" example:"5000"`
	Currency      string `json:"currency" validate:"required,len=3" example:"USD"`
	Access        string `json:"access" validate:"required,oneof=lifetime window" example:"lifetime"`
	WindowSecs    int64  `json:"window_secs,omitempty" validate:"gte=0" example:"2592000"`
	DownloadQuota *int   `json:"download_quota,omitempty" example:"10"`
}

type ContentLicenseResponseDTO struct {
	ID            int        `json:"id" example:"30"`
	AuthorID      int        `json:"author_id" example:"3"`
	ContentID     int        `json:"content_id" example:"300"`
	Amount        int64      `json:"amount" example:"5000"`
	Currency      string     `json:"currency" example:"USD"`
	Status        string     `json:"status" example:"active"`
	Access        string     `json:"access" example:"window"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	DownloadsLeft *int       `json:"downloads_left,omitempty" example:"9"`
	PaymentID     *int       `json:"payment_id,omitempty" example:"5"`
	CreatedAt     time.Time  `json:"created_at" example:"2025-12-09T16:09:57+03:00"`
}
