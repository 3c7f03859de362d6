package dto

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// UpdateCategoryRequest body para PUT /api/categories/:id.
type UpdateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse respuesta de categoría.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
