package contact

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, contact *Contact) (*Contact, error)
	List(ctx context.Context, limit, offset int) ([]Contact, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
	MarkRead(ctx context.Context, id int64) error
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{
		db: db,
	}
}

// MigrateSchema brings a contacts table that predates the read flag up
// to date. Safe to re-run; runs once at startup, never per request.
func MigrateSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.ExecContext(ctx,
		"ALTER TABLE contacts ADD COLUMN IF NOT EXISTS is_read BOOLEAN NOT NULL DEFAULT FALSE")
	if err != nil {
		return fmt.Errorf("failed to add is_read column: %w", err)
	}
	return nil
}

func (r *repository) Create(ctx context.Context, contact *Contact) (*Contact, error) {
	_, err := r.db.NewInsert().
		Model(contact).
		Returning("id, created_at, is_read").
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// List returns contacts newest first, offset-paginated.
func (r *repository) List(ctx context.Context, limit, offset int) ([]Contact, error) {
	contacts := make([]Contact, 0)
	err := r.db.NewSelect().
		Model(&contacts).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().
		Model((*Contact)(nil)).
		Count(ctx)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*Contact)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrContactNotFound
	}
	return nil
}

// MarkRead flips the read flag. The flip is one-way: re-marking an
// already-read contact affects one row and succeeds again.
func (r *repository) MarkRead(ctx context.Context, id int64) error {
	res, err := r.db.NewUpdate().
		Model((*Contact)(nil)).
		Set("is_read = TRUE").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrContactNotFound
	}
	return nil
}
