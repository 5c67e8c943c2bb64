package recipeModel

import (
	db "github.com/gmaschi/go-recipe-book-api/internal/services/datastore/postgresql/recipes/document"
	"github.com/google/uuid"
)

type (
	Response struct {
		ID           uuid.UUID `json:"id"`
		Title        string    `json:"title"`
		Description  string    `json:"description"`
		Author       string    `json:"author"`
		Ingredients  []string  `json:"ingredients"`
		Instructions []string  `json:"instructions"`
	}

	ListResponse struct {
		Items []Response `json:"items"`
		db.PageInfo
	}
)

func NewResponse(recipe db.Recipe) Response {
	res := Response(recipe)
	if res.Ingredients == nil {
		res.Ingredients = []string{}
	}
	if res.Instructions == nil {
		res.Instructions = []string{}
	}
	return res
}

func NewListResponse(page db.RecipePage) ListResponse {
	items := make([]Response, 0, len(page.Items))
	for _, recipe := range page.Items {
		items = append(items, NewResponse(recipe))
	}
	return ListResponse{
		Items:    items,
		PageInfo: page.PageInfo,
	}
}
