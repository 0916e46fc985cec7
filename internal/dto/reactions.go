package dto

type ReactionRequest struct {
	Type string `json:"type" binding:"required,oneof=like dislike"`
}

type ReactionResponse struct {
	Ok       bool  `json:"ok"`
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}
