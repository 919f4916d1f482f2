package admin

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

var ErrAdminNotFound = errors.New("administrator not found")

type Repository interface {
	GetByUsername(ctx context.Context, username string) (*Administrator, error)
	EnsureDefaultAdmin(ctx context.Context, username, password string) error
}

type repository struct {
	db     *bun.DB
	logger *slog.Logger
}

func NewRepository(db *bun.DB, logger *slog.Logger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*Administrator, error) {
	adm := &Administrator{}
	err := r.db.NewSelect().
		Model(adm).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return adm, nil
}

// EnsureDefaultAdmin seeds the initial operator account on first boot.
// The insert is keyed on the username unique constraint; an existing
// account makes this a silent no-op. The plaintext password is hashed
// immediately and never stored.
func (r *repository) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	res, err := r.db.NewInsert().
		Model(&Administrator{Username: username, PasswordHash: string(hash)}).
		On("CONFLICT (username) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return err
	}

	if rows, err := res.RowsAffected(); err == nil && rows > 0 {
		r.logger.Info("default admin user created", "username", username)
	}
	return nil
}
