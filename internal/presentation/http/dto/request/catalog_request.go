package request

// CreateCategoryRequest represents the create category request
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateCategoryRequest represents the update category request
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateUnitRequest represents the create unit request
type CreateUnitRequest struct {
	Name      string `json:"name" binding:"required"`
	ShortCode string `json:"short_code"`
}

// ListFilterRequest holds common listing query parameters
type ListFilterRequest struct {
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	Search  string `form:"search"`
}
