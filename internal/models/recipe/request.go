package recipeModel

import (
	db "github.com/gmaschi/go-recipe-book-api/internal/services/datastore/postgresql/recipes/document"
	"github.com/google/uuid"
)

type (
	CreateRequest struct {
		Title        string   `json:"title" binding:"length=4-256"`
		Description  string   `json:"description" binding:"length=4-256"`
		Author       string   `json:"author" binding:"length=4-256"`
		Ingredients  []string `json:"ingredients" binding:"notempty,dive,notempty"`
		Instructions []string `json:"instructions" binding:"notempty,dive,notempty"`
	}

	UpdateRequest struct {
		Title        string   `json:"title" binding:"length=4-256"`
		Description  string   `json:"description" binding:"length=4-256"`
		Author       string   `json:"author" binding:"length=4-256"`
		Ingredients  []string `json:"ingredients" binding:"notempty,dive,notempty"`
		Instructions []string `json:"instructions" binding:"notempty,dive,notempty"`
	}

	GetRequest struct {
		ID string `uri:"id" binding:"required,uuid"`
	}

	ListRequest struct {
		PageNumber int32 `form:"pageNumber,default=1" binding:"min=1"`
		PageSize   int32 `form:"pageSize,default=10" binding:"min=1,max=100"`
	}
)

// Recipe builds the entity stored under id.
func (r CreateRequest) Recipe(id uuid.UUID) db.Recipe {
	return db.Recipe{
		ID:           id,
		Title:        r.Title,
		Description:  r.Description,
		Author:       r.Author,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
	}
}

// Recipe builds the replacement for the recipe stored under id.
func (r UpdateRequest) Recipe(id uuid.UUID) db.Recipe {
	return CreateRequest(r).Recipe(id)
}

// UUID parses the path id. Binding has already checked its format.
func (r GetRequest) UUID() (uuid.UUID, error) {
	return uuid.Parse(r.ID)
}

func (r ListRequest) Params() db.ListRecipesParams {
	return db.ListRecipesParams{
		PageNumber: r.PageNumber,
		PageSize:   r.PageSize,
	}
}
