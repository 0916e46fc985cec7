package dto

import "github.com/inkpress/blog-service/internal/model"

type ShareRequest struct {
	Platform string `json:"platform" binding:"required,oneof=facebook twitter linkedin whatsapp copy_link"`
}

type ShareResponse struct {
	Message string            `json:"message"`
	URL     string            `json:"url"`
	Totals  model.ShareTotals `json:"totals"`
}

type ShareTotalsResponse struct {
	Totals model.ShareTotals `json:"totals"`
}
