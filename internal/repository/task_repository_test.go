package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Samuel04-png/aether-api/internal/models"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestGormTaskRepository_List_EmptyOwnerShortCircuits(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	// No scoping id means no query at all.
	tasks, total, err := repo.List(TaskFilter{})

	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_List_FiltersByOwner(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT count(*) FROM `tasks` WHERE tasks.owner_id = ? AND `tasks`.`deleted_at` IS NULL")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	mock.ExpectQuery("SELECT \\* FROM `tasks` WHERE tasks\\.owner_id = \\?").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "title", "status"}).
			AddRow(1, 7, "Write report", "todo"))

	tasks, total, err := repo.List(TaskFilter{OwnerID: 7})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write report", tasks[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_CountByProject(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `tasks` WHERE project_id = \\?").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(4))

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `tasks` WHERE project_id = \\? AND status = \\?").
		WithArgs(uint64(3), string(models.TaskStatusDone)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))

	done, total, err := repo.CountByProject(3)

	require.NoError(t, err)
	assert.Equal(t, int64(2), done)
	assert.Equal(t, int64(4), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
