package db

import (
	"github.com/google/uuid"
)

const (
	DefaultPageNumber int32 = 1
	DefaultPageSize   int32 = 10
)

type Recipe struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Author       string    `json:"author"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
}

type ListRecipesParams struct {
	PageNumber int32
	PageSize   int32
}

// PageInfo describes where a page sits inside the whole result set.
type PageInfo struct {
	PageNumber      int32 `json:"pageNumber"`
	PageSize        int32 `json:"pageSize"`
	PageCount       int64 `json:"pageCount"`
	TotalItemCount  int64 `json:"totalItemCount"`
	FirstItemOnPage int64 `json:"firstItemOnPage"`
	LastItemOnPage  int64 `json:"lastItemOnPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	IsFirstPage     bool  `json:"isFirstPage"`
	IsLastPage      bool  `json:"isLastPage"`
}

type RecipePage struct {
	Items []Recipe
	PageInfo
}
