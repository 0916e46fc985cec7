package model

import (
	"time"

	"github.com/google/uuid"
)

type SharePlatform string

const (
	ShareFacebook SharePlatform = "facebook"
	ShareTwitter  SharePlatform = "twitter"
	ShareLinkedIn SharePlatform = "linkedin"
	ShareWhatsApp SharePlatform = "whatsapp"
	ShareCopyLink SharePlatform = "copy_link"
)

func (p SharePlatform) Valid() bool {
	switch p {
	case ShareFacebook, ShareTwitter, ShareLinkedIn, ShareWhatsApp, ShareCopyLink:
		return true
	}
	return false
}

// Share rows are an append-only log; totals are always derived on read.
type Share struct {
	ID        uuid.UUID     `json:"id"`
	PostID    uuid.UUID     `json:"post_id"`
	AuthorID  *uuid.UUID    `json:"author_id"`
	Platform  SharePlatform `json:"platform"`
	CreatedAt time.Time     `json:"created_at"`
}

type ShareTotals struct {
	Total       int64                   `json:"total"`
	PerPlatform map[SharePlatform]int64 `json:"per_platform"`
}
