package auth

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Contents is the call-through repository for user-generated documents.
// Every read is scoped to the owning user; the auth core never consults it
// during request authorization.
type Contents interface {
	repository.Repository[*Content]

	Create(ctx context.Context, record *Content, criteria ...repository.InsertCriteria) (*Content, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Content, criteria ...repository.InsertCriteria) (*Content, error)
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*Content, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*Content, error)
	DeleteByIDForUser(ctx context.Context, id, userID uuid.UUID) error
}

type contents struct {
	repository.Repository[*Content]
	db *bun.DB
}

var (
	_ Contents                        = (*contents)(nil)
	_ repository.Repository[*Content] = (*contents)(nil)
)

func NewContentsRepository(db *bun.DB) Contents {
	repo := repository.NewRepository[*Content](db, repository.ModelHandlers[*Content]{
		NewRecord: func() *Content { return &Content{} },
		GetID: func(c *Content) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID: func(c *Content, id uuid.UUID) {
			if c != nil {
				c.ID = id
			}
		},
	})

	return &contents{
		Repository: repo,
		db:         db,
	}
}

func (r *contents) Create(ctx context.Context, record *Content, criteria ...repository.InsertCriteria) (*Content, error) {
	return r.CreateTx(ctx, r.db, record, criteria...)
}

func (r *contents) CreateTx(ctx context.Context, tx bun.IDB, record *Content, criteria ...repository.InsertCriteria) (*Content, error) {
	if record != nil && record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (r *contents) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*Content, error) {
	record := &Content{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", userID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if repository.IsRecordNotFound(err) || err == sql.ErrNoRows {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"id": id.String()})
		}
		return nil, err
	}

	return record, nil
}

func (r *contents) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*Content, error) {
	var records []*Content
	q := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.user_id = ?", userID).
		Order("created_at DESC")

	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *contents) DeleteByIDForUser(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Content)(nil)).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{"id": id.String()})
	}

	return nil
}
