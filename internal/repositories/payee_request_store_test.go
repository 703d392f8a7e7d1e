package repositories

import (
	"context"
	"database/sql"
	"testing"

	"payee-server/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupStoreMockDB creates a sqlmock-backed gorm DB for testing
func setupStoreMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	var db *sql.DB
	var mock sqlmock.Sqlmock
	var err error

	db, mock, err = sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	dialector := postgres.New(postgres.Config{
		Conn:       db,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open gorm db: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return gormDB, mock, cleanup
}

func TestPayeeRequestStore_ClaimLogs(t *testing.T) {
	t.Run("rows are locked and flipped to processing inside one transaction", func(t *testing.T) {
		db, mock, cleanup := setupStoreMockDB(t)
		defer cleanup()

		mock.ExpectBegin()
		// 선점 대상 행을 행 잠금으로 조회합니다.
		mock.ExpectQuery(`SELECT .* FROM "payee_request_logs" .*FOR UPDATE SKIP LOCKED`).
			WillReturnRows(sqlmock.NewRows([]string{"idx", "email", "tel", "task_idx", "settlement_idx", "is_use"}).
				AddRow(1, "a@test.com", "010-1111-2222", "5,6", "100", models.LogUseNo).
				AddRow(2, "a@test.com", "010-1111-2222", "7", "101", models.LogUseNo))
		// 같은 트랜잭션 안에서 P로 표시해야 병렬 실행이 같은 행을 집지 않습니다.
		mock.ExpectExec(`UPDATE "payee_request_logs"`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		store := NewPayeeRequestStore(db)
		logs, err := store.ClaimLogs(context.Background())

		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, uint(1), logs[0].Idx)
		assert.Equal(t, uint(2), logs[1].Idx)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no unused rows means no update is issued", func(t *testing.T) {
		db, mock, cleanup := setupStoreMockDB(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM "payee_request_logs" .*FOR UPDATE SKIP LOCKED`).
			WillReturnRows(sqlmock.NewRows([]string{"idx"}))
		mock.ExpectCommit()

		store := NewPayeeRequestStore(db)
		logs, err := store.ClaimLogs(context.Background())

		require.NoError(t, err)
		assert.Empty(t, logs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("select failure rolls the claim back", func(t *testing.T) {
		db, mock, cleanup := setupStoreMockDB(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM "payee_request_logs" .*FOR UPDATE SKIP LOCKED`).
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		store := NewPayeeRequestStore(db)
		logs, err := store.ClaimLogs(context.Background())

		require.Error(t, err)
		assert.Nil(t, logs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
