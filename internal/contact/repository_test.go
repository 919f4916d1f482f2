package contact_test

import (
	"context"
	"testing"

	"github.com/foundersof404/404founders/internal/contact"
	"github.com/foundersof404/404founders/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrateSchema_LegacyTable covers a contacts table created before
// the read flag existed: the startup migration must add the column,
// tolerate being re-run, and leave existing rows unread.
func TestMigrateSchema_LegacyTable(t *testing.T) {
	pgContainer := testdb.SetupSharedPostgres(t)
	ctx := context.Background()

	_, err := pgContainer.DB.ExecContext(ctx, "DROP TABLE IF EXISTS contacts")
	require.NoError(t, err)

	_, err = pgContainer.DB.ExecContext(ctx, `
		CREATE TABLE contacts (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR NOT NULL,
			email VARCHAR NOT NULL,
			phone VARCHAR,
			company VARCHAR,
			message VARCHAR NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	require.NoError(t, err)

	_, err = pgContainer.DB.ExecContext(ctx,
		"INSERT INTO contacts (name, email, message) VALUES ('Old', 'old@example.com', 'pre-migration row')")
	require.NoError(t, err)

	require.NoError(t, contact.MigrateSchema(ctx, pgContainer.DB))
	// Re-applying must not error
	require.NoError(t, contact.MigrateSchema(ctx, pgContainer.DB))

	repo := contact.NewRepository(pgContainer.DB)

	rows, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].IsRead)

	require.NoError(t, repo.MarkRead(ctx, rows[0].ID))

	rows, err = repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].IsRead)
}
