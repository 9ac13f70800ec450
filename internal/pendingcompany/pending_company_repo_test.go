package pendingcompany_test

import (
	"context"
	"testing"

	"github.com/viorizz/swom/internal/pendingcompany"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupPendingRepoTest(t *testing.T) (pendingcompany.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	assert.NoError(t, err)

	return pendingcompany.NewRepository(gdb), mock
}

func TestPendingCompanyRepository_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("deletes the tenant's row", func(t *testing.T) {
		repo, mock := setupPendingRepoTest(t)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "pending_companies" WHERE id = \$1 AND tenant_id = \$2`).
			WithArgs(id.String(), "tenant-a").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(ctx, "tenant-a", id.String())

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows reports record not found", func(t *testing.T) {
		repo, mock := setupPendingRepoTest(t)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "pending_companies" WHERE id = \$1 AND tenant_id = \$2`).
			WithArgs(id.String(), "tenant-a").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.Delete(ctx, "tenant-a", id.String())

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
