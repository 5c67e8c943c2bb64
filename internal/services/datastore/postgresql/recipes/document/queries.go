package db

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries runs the raw document statements against a connection or a transaction.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const createRecipeDocument = `
INSERT INTO recipebook.mt_doc_recipe (id, data, mt_version)
VALUES ($1, $2, $3)
`

func (q *Queries) CreateRecipeDocument(ctx context.Context, recipe Recipe) error {
	data, err := json.Marshal(recipe)
	if err != nil {
		return err
	}
	_, err = q.db.ExecContext(ctx, createRecipeDocument, recipe.ID, string(data), newVersion())
	return err
}

const getRecipeDocument = `
SELECT data FROM recipebook.mt_doc_recipe
WHERE id = $1
`

// GetRecipeDocument returns sql.ErrNoRows when no document has the given id.
func (q *Queries) GetRecipeDocument(ctx context.Context, id uuid.UUID) (Recipe, error) {
	var data []byte
	if err := q.db.QueryRowContext(ctx, getRecipeDocument, id).Scan(&data); err != nil {
		return Recipe{}, err
	}
	return decodeRecipe(data)
}

const updateRecipeDocument = `
UPDATE recipebook.mt_doc_recipe
SET data = $2, mt_version = $3, mt_last_modified = now()
WHERE id = $1
`

func (q *Queries) UpdateRecipeDocument(ctx context.Context, recipe Recipe) (int64, error) {
	data, err := json.Marshal(recipe)
	if err != nil {
		return 0, err
	}
	result, err := q.db.ExecContext(ctx, updateRecipeDocument, recipe.ID, string(data), newVersion())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteRecipeDocument = `
DELETE FROM recipebook.mt_doc_recipe
WHERE id = $1
`

func (q *Queries) DeleteRecipeDocument(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteRecipeDocument, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const countRecipeDocuments = `
SELECT count(*) FROM recipebook.mt_doc_recipe
`

func (q *Queries) CountRecipeDocuments(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countRecipeDocuments).Scan(&count)
	return count, err
}

const listRecipeDocuments = `
SELECT data FROM recipebook.mt_doc_recipe
ORDER BY id
LIMIT $1
OFFSET $2
`

type ListRecipeDocumentsParams struct {
	Limit  int32
	Offset int64
}

func (q *Queries) ListRecipeDocuments(ctx context.Context, arg ListRecipeDocumentsParams) ([]Recipe, error) {
	rows, err := q.db.QueryContext(ctx, listRecipeDocuments, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Recipe{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		recipe, err := decodeRecipe(data)
		if err != nil {
			return nil, err
		}
		items = append(items, recipe)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func decodeRecipe(data []byte) (Recipe, error) {
	var recipe Recipe
	err := json.Unmarshal(data, &recipe)
	return recipe, err
}

func newVersion() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}
