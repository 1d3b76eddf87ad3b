package product

type CreateProductRequest struct {
	ProductName string  `json:"productName" binding:"required,max=100"`
	Price       float64 `json:"price" binding:"min=0"`
	Stock       int     `json:"stock" binding:"min=0"`
}

type UpdateProductRequest struct {
	ProductName string  `json:"productName" binding:"required,max=100"`
	Price       float64 `json:"price" binding:"min=0"`
	Stock       int     `json:"stock" binding:"min=0"`
}
