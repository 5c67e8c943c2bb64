package recipeController

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	problemMiddleware "github.com/gmaschi/go-recipe-book-api/internal/controllers/middlewares/problem"
	versionMiddleware "github.com/gmaschi/go-recipe-book-api/internal/controllers/middlewares/version"
	recipeModel "github.com/gmaschi/go-recipe-book-api/internal/models/recipe"
	"github.com/gmaschi/go-recipe-book-api/internal/services/cache"
	db "github.com/gmaschi/go-recipe-book-api/internal/services/datastore/postgresql/recipes/document"
	"github.com/gmaschi/go-recipe-book-api/pkg/tools/parseErrors"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Controller struct {
	store   db.Store
	recipes *cache.Recipes
}

// New creates a pointer to a Controller. recipes serves the cached reads by id.
func New(store db.Store, recipes *cache.Recipes) *Controller {
	return &Controller{
		store:   store,
		recipes: recipes,
	}
}

// Create handles the request to create a new recipe
func (c *Controller) Create(ctx *gin.Context) {
	var req recipeModel.CreateRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		problemMiddleware.ValidationFailed(ctx, err, parseErrors.SourceBody)
		return
	}

	id, err := uuid.NewV7()
	if err != nil {
		_ = ctx.Error(errors.Wrap(err, "generate recipe id"))
		return
	}

	recipe := req.Recipe(id)
	if err := c.store.InsertRecipe(ctx.Request.Context(), recipe); err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.Header("Location", fmt.Sprintf("/api/v%d/recipes/%s", versionMiddleware.FromContext(ctx), id))
	ctx.JSON(http.StatusCreated, recipeModel.NewResponse(recipe))
}

// Recipe handles the request to get a recipe by ID
func (c *Controller) Recipe(ctx *gin.Context) {
	id, ok := bindID(ctx)
	if !ok {
		return
	}

	recipe, err := c.recipes.GetOrLoad(ctx.Request.Context(), id, func(loadCtx context.Context) (*db.Recipe, error) {
		return c.store.LoadRecipe(loadCtx, id)
	})
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	if recipe == nil {
		ctx.AbortWithStatus(http.StatusNotFound)
		return
	}

	ctx.JSON(http.StatusOK, recipeModel.NewResponse(*recipe))
}

// List handles a request to list recipes with pagination
func (c *Controller) List(ctx *gin.Context) {
	var req recipeModel.ListRequest

	if err := ctx.ShouldBindQuery(&req); err != nil {
		problemMiddleware.ValidationFailed(ctx, err, parseErrors.SourceQuery)
		return
	}

	page, err := c.store.ListRecipes(ctx.Request.Context(), req.Params())
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, recipeModel.NewListResponse(page))
}

// Update handles the request to replace a specific recipe by ID
func (c *Controller) Update(ctx *gin.Context) {
	id, ok := bindID(ctx)
	if !ok {
		return
	}

	var req recipeModel.UpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		problemMiddleware.ValidationFailed(ctx, err, parseErrors.SourceBody)
		return
	}

	current, err := c.store.LoadRecipe(ctx.Request.Context(), id)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	if current == nil {
		ctx.AbortWithStatus(http.StatusNotFound)
		return
	}

	recipe := req.Recipe(current.ID)
	if err := c.store.ReplaceRecipe(ctx.Request.Context(), recipe); err != nil {
		if errors.Is(err, db.ErrRecipeNotFound) {
			ctx.AbortWithStatus(http.StatusNotFound)
			return
		}
		_ = ctx.Error(err)
		return
	}
	c.recipes.Invalidate(context.WithoutCancel(ctx.Request.Context()), id)

	ctx.JSON(http.StatusOK, recipeModel.NewResponse(recipe))
}

// Delete handles a request to delete a recipe
func (c *Controller) Delete(ctx *gin.Context) {
	id, ok := bindID(ctx)
	if !ok {
		return
	}

	current, err := c.store.LoadRecipe(ctx.Request.Context(), id)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	if current == nil {
		ctx.AbortWithStatus(http.StatusNotFound)
		return
	}

	if err := c.store.DeleteRecipe(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, db.ErrRecipeNotFound) {
			ctx.AbortWithStatus(http.StatusNotFound)
			return
		}
		_ = ctx.Error(err)
		return
	}
	c.recipes.Invalidate(context.WithoutCancel(ctx.Request.Context()), id)

	ctx.Status(http.StatusNoContent)
}

// bindID reads the :id path parameter. An id that is not a UUID matches no
// recipe, so it is answered with 404 rather than a validation problem.
func bindID(ctx *gin.Context) (uuid.UUID, bool) {
	var req recipeModel.GetRequest

	if err := ctx.ShouldBindUri(&req); err != nil {
		ctx.AbortWithStatus(http.StatusNotFound)
		return uuid.Nil, false
	}
	id, err := req.UUID()
	if err != nil {
		ctx.AbortWithStatus(http.StatusNotFound)
		return uuid.Nil, false
	}
	return id, true
}
