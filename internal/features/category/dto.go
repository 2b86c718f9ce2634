package category

// Requests

type UpsertCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}
