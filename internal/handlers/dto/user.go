package dto

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Nick     string `json:"nick" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateRequest намеренно не содержит role и image:
// эти поля нельзя менять через профиль
type UpdateRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Nick     string `json:"nick"`
}
