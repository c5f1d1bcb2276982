package dto

type FollowRequest struct {
	Followed string `json:"followed" binding:"required"`
}
