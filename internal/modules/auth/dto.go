package auth

type RegisterRequest struct {
	UserName string `json:"userName" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type UserResponse struct {
	ID       string   `json:"id"`
	UserName string   `json:"userName"`
	Roles    []string `json:"roles"`
}
