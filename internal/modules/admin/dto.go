package admin

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type UserSummary struct {
	ID       string   `json:"id"`
	UserName string   `json:"userName"`
	Role     string   `json:"role"`
	Roles    []string `json:"roles"`
	IsAdmin  bool     `json:"isAdmin"`
}

type RoleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
