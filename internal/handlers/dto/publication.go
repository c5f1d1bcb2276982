package dto

type PublicationRequest struct {
	Text string `json:"text" binding:"required"`
}
