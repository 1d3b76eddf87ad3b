package department

type RegisterDepartmentRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type UpdateDepartmentRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type SearchDepartmentQuery struct {
	ID   string `form:"id"`
	Name string `form:"name"`
}
