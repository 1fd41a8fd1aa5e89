package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-grpc/internal/config"
	"github.com/aanand-mishra/students-grpc/internal/storage"
	"github.com/aanand-mishra/students-grpc/internal/types"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()
	cfg := &config.Config{
		Storage: config.Storage{
			Driver: config.DriverSQLite,
			Path:   filepath.Join(t.TempDir(), "students.db"),
		},
	}
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func bob() types.Student {
	return types.Student{
		Name:  "Bob Smith",
		Email: "bob.smith@university.edu",
		Age:   22,
		Major: "Mathematics",
		GPA:   3.6,
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		s := newTestStore(t)

		created, err := s.CreateStudent(ctx, bob())
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		got, err := s.GetStudentByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("get missing", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.GetStudentByID(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		s := newTestStore(t)
		created, err := s.CreateStudent(ctx, bob())
		require.NoError(t, err)

		next := bob()
		next.Major = "Computer Engineering"
		next.GPA = 3.95
		updated, err := s.UpdateStudentByID(ctx, created.ID, next)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)

		got, err := s.GetStudentByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)

		_, err = s.UpdateStudentByID(ctx, "missing", next)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		s := newTestStore(t)
		created, err := s.CreateStudent(ctx, bob())
		require.NoError(t, err)

		removed, ok, err := s.DeleteStudentByID(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, created, removed)

		_, ok, err = s.DeleteStudentByID(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("list is ordered by id", func(t *testing.T) {
		s := newTestStore(t)
		for i := 0; i < 5; i++ {
			_, err := s.CreateStudent(ctx, bob())
			require.NoError(t, err)
		}

		list, err := s.GetStudents(ctx)
		require.NoError(t, err)
		require.Len(t, list, 5)
		for i := 1; i < len(list); i++ {
			assert.Less(t, list[i-1].ID, list[i].ID)
		}

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		s := newTestStore(t)

		list, err := s.GetStudents(ctx)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})
}
