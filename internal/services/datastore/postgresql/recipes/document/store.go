package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var ErrRecipeNotFound = errors.New("recipe not found")

const tracerName = "github.com/gmaschi/go-recipe-book-api/internal/services/datastore/postgresql/recipes/document"

//go:generate mockgen -package mockedstore -destination ../../../../../mocks/datastore/postgresql/recipes/store.go . Store

// Store is the document store used by the recipe controllers.
//
// Mutations are confirmed by a commit before they return; LoadRecipe reports
// a missing document as a nil recipe and a nil error.
type Store interface {
	InsertRecipe(ctx context.Context, recipe Recipe) error
	LoadRecipe(ctx context.Context, id uuid.UUID) (*Recipe, error)
	ReplaceRecipe(ctx context.Context, recipe Recipe) error
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	ListRecipes(ctx context.Context, arg ListRecipesParams) (RecipePage, error)
	Ping(ctx context.Context) error
}

type PostgresqlStore struct {
	db *sql.DB
	*Queries
}

func NewStore(db *sql.DB) *PostgresqlStore {
	return &PostgresqlStore{
		db:      db,
		Queries: New(db),
	}
}

// execTx runs fn inside a transaction and commits it.
func (s *PostgresqlStore) execTx(ctx context.Context, opts *sql.TxOptions, fn func(*Queries) error) error {
	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}

	if err := fn(s.WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Wrapf(err, "rollback failed: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}

func (s *PostgresqlStore) InsertRecipe(ctx context.Context, recipe Recipe) (err error) {
	ctx, span := startSpan(ctx, "InsertRecipe", attribute.String("recipe.id", recipe.ID.String()))
	defer func() { endSpan(span, err) }()

	return s.execTx(ctx, nil, func(q *Queries) error {
		return errors.Wrap(q.CreateRecipeDocument(ctx, recipe), "insert recipe")
	})
}

func (s *PostgresqlStore) LoadRecipe(ctx context.Context, id uuid.UUID) (_ *Recipe, err error) {
	ctx, span := startSpan(ctx, "LoadRecipe", attribute.String("recipe.id", id.String()))
	defer func() { endSpan(span, err) }()

	recipe, err := s.GetRecipeDocument(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "load recipe")
	}
	return &recipe, nil
}

func (s *PostgresqlStore) ReplaceRecipe(ctx context.Context, recipe Recipe) (err error) {
	ctx, span := startSpan(ctx, "ReplaceRecipe", attribute.String("recipe.id", recipe.ID.String()))
	defer func() { endSpan(span, err) }()

	return s.execTx(ctx, nil, func(q *Queries) error {
		n, err := q.UpdateRecipeDocument(ctx, recipe)
		if err != nil {
			return errors.Wrap(err, "replace recipe")
		}
		if n == 0 {
			return ErrRecipeNotFound
		}
		return nil
	})
}

func (s *PostgresqlStore) DeleteRecipe(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := startSpan(ctx, "DeleteRecipe", attribute.String("recipe.id", id.String()))
	defer func() { endSpan(span, err) }()

	return s.execTx(ctx, nil, func(q *Queries) error {
		n, err := q.DeleteRecipeDocument(ctx, id)
		if err != nil {
			return errors.Wrap(err, "delete recipe")
		}
		if n == 0 {
			return ErrRecipeNotFound
		}
		return nil
	})
}

// ListRecipes reads the total count and the requested page from one snapshot.
func (s *PostgresqlStore) ListRecipes(ctx context.Context, arg ListRecipesParams) (page RecipePage, err error) {
	arg = arg.withDefaults()

	ctx, span := startSpan(ctx, "ListRecipes",
		attribute.Int("page.number", int(arg.PageNumber)),
		attribute.Int("page.size", int(arg.PageSize)),
	)
	defer func() { endSpan(span, err) }()

	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err = s.execTx(ctx, opts, func(q *Queries) error {
		total, err := q.CountRecipeDocuments(ctx)
		if err != nil {
			return errors.Wrap(err, "count recipes")
		}

		items := []Recipe{}
		if arg.offset() < total {
			items, err = q.ListRecipeDocuments(ctx, ListRecipeDocumentsParams{
				Limit:  arg.PageSize,
				Offset: arg.offset(),
			})
			if err != nil {
				return errors.Wrap(err, "list recipes")
			}
		}

		page = RecipePage{
			Items:    items,
			PageInfo: NewPageInfo(arg.PageNumber, arg.PageSize, total, len(items)),
		}
		return nil
	})
	if err != nil {
		return RecipePage{}, err
	}
	return page, nil
}

func (s *PostgresqlStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("db.system", "postgresql"),
		attribute.String("db.collection.name", "mt_doc_recipe"),
	)
	return otel.Tracer(tracerName).Start(ctx, "db."+name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, ErrRecipeNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage error")
	}
	span.End()
}

var _ Store = (*PostgresqlStore)(nil)
