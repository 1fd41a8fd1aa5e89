package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-grpc/internal/storage/memory"
	"github.com/aanand-mishra/students-grpc/internal/types"
)

func validStudent() types.Student {
	return types.Student{
		Name:  "Alice",
		Email: "alice@x.edu",
		Age:   20,
		Major: "CS",
		GPA:   3.8,
	}
}

func newTestService() *Students {
	return New(memory.New(), Options{})
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.Student)
		wantErr string
	}{
		{"valid", func(*types.Student) {}, ""},
		{"blank name", func(s *types.Student) { s.Name = "   " }, "name required"},
		{"empty name", func(s *types.Student) { s.Name = "" }, "name required"},
		{"blank major", func(s *types.Student) { s.Major = "\t" }, "major required"},
		{"age -1", func(s *types.Student) { s.Age = -1 }, "age out of range"},
		{"age 0", func(s *types.Student) { s.Age = 0 }, ""},
		{"age 150", func(s *types.Student) { s.Age = 150 }, ""},
		{"age 151", func(s *types.Student) { s.Age = 151 }, "age out of range"},
		{"gpa -0.01", func(s *types.Student) { s.GPA = -0.01 }, "gpa out of range"},
		{"gpa 0", func(s *types.Student) { s.GPA = 0 }, ""},
		{"gpa 4.0", func(s *types.Student) { s.GPA = 4.0 }, ""},
		{"gpa 4.01", func(s *types.Student) { s.GPA = 4.01 }, "gpa out of range"},
		{"email a@b", func(s *types.Student) { s.Email = "a@b" }, ""},
		{"email ab", func(s *types.Student) { s.Email = "ab" }, "invalid email"},
		{"email @b", func(s *types.Student) { s.Email = "@b" }, "invalid email"},
		{"email a@", func(s *types.Student) { s.Email = "a@" }, "invalid email"},
		{"email a@b@c", func(s *types.Student) { s.Email = "a@b@c" }, "invalid email"},
		{"email empty", func(s *types.Student) { s.Email = "" }, "invalid email"},
		{"email blank local part", func(s *types.Student) { s.Email = " @b" }, "invalid email"},
		{"email blank domain", func(s *types.Student) { s.Email = "a@ " }, "invalid email"},
		{"email blank", func(s *types.Student) { s.Email = "   " }, "invalid email"},
		{"email padded", func(s *types.Student) { s.Email = " a@b " }, ""},
		{"first failing field wins", func(s *types.Student) {
			s.Name = ""
			s.GPA = 9
		}, "name required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService()
			student := validStudent()
			tt.mutate(&student)

			created, err := svc.Create(context.Background(), student)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.NotEmpty(t, created.ID)
				return
			}

			require.Error(t, err)
			assert.True(t, IsInvalidArgument(err))
			assert.Equal(t, tt.wantErr, Message(err))
		})
	}
}

func TestRejectionsStayBelowInfo(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := context.Background()
	svc := newTestService()

	bad := validStudent()
	bad.Email = "nope"
	_, err := svc.Create(ctx, bad)
	require.True(t, IsInvalidArgument(err))

	created, err := svc.Create(ctx, validStudent())
	require.NoError(t, err)

	bad.ID = created.ID
	_, err = svc.Update(ctx, bad)
	require.True(t, IsInvalidArgument(err))

	assert.NotContains(t, buf.String(), "rejected")
	assert.NotContains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "student created")
}

func TestCreateIgnoresCallerID(t *testing.T) {
	svc := newTestService()
	student := validStudent()
	student.ID = "chosen-by-caller"

	created, err := svc.Create(context.Background(), student)
	require.NoError(t, err)
	assert.NotEqual(t, "chosen-by-caller", created.ID)

	_, err = svc.Get(context.Background(), "chosen-by-caller")
	assert.True(t, IsNotFound(err))
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.Create(ctx, validStudent())
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.Get(ctx, "never-created")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	_, err = svc.Get(ctx, " ")
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
	assert.Equal(t, "id required", Message(err))
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.Create(ctx, validStudent())
	require.NoError(t, err)

	t.Run("overwrites every field and keeps the id", func(t *testing.T) {
		next := types.Student{ID: created.ID, Name: "Alicia", Email: "alicia@y.org", Age: 21, Major: "Math", GPA: 3.9}
		updated, err := svc.Update(ctx, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated)

		got, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, next, got)
	})

	t.Run("missing id", func(t *testing.T) {
		next := validStudent()
		_, err := svc.Update(ctx, next)
		require.Error(t, err)
		assert.Equal(t, "id required", Message(err))
	})

	t.Run("unknown id", func(t *testing.T) {
		next := validStudent()
		next.ID = "unknown"
		_, err := svc.Update(ctx, next)
		assert.True(t, IsNotFound(err))
	})

	t.Run("invalid payload", func(t *testing.T) {
		next := validStudent()
		next.ID = created.ID
		next.Age = 200
		_, err := svc.Update(ctx, next)
		assert.True(t, IsInvalidArgument(err))
		assert.Equal(t, "age out of range", Message(err))
	})
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.Create(ctx, validStudent())
	require.NoError(t, err)

	first, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.Equal(t, "student Alice deleted", first.Message)

	second, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, second.Success)
	assert.Contains(t, second.Message, "not found")

	_, err = svc.Delete(ctx, "")
	assert.True(t, IsInvalidArgument(err))
}

func TestListPagination(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	const total = 23
	want := map[string]bool{}
	for i := 0; i < total; i++ {
		s := validStudent()
		s.Name = fmt.Sprintf("student %d", i)
		created, err := svc.Create(ctx, s)
		require.NoError(t, err)
		want[created.ID] = true
	}

	for _, pageSize := range []int32{1, 5, 10, 23, 50} {
		t.Run(fmt.Sprintf("page size %d", pageSize), func(t *testing.T) {
			seen := map[string]bool{}
			var lastID, token string
			pages := 0

			for {
				resp, err := svc.List(ctx, types.ListStudentsRequest{PageSize: pageSize, PageToken: token})
				require.NoError(t, err)
				assert.Equal(t, int32(total), resp.TotalCount)
				assert.LessOrEqual(t, len(resp.Students), int(pageSize))

				for _, s := range resp.Students {
					assert.False(t, seen[s.ID], "duplicate %s", s.ID)
					assert.Greater(t, s.ID, lastID, "ids must ascend")
					seen[s.ID] = true
					lastID = s.ID
				}

				pages++
				if resp.NextPageToken == "" {
					break
				}
				token = resp.NextPageToken
				require.Less(t, pages, total+1, "pagination does not terminate")
			}

			assert.Equal(t, want, seen)
		})
	}
}

func TestListPageSizes(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.New(), Options{DefaultPageSize: 3, MaxPageSize: 4})

	for i := 0; i < 6; i++ {
		_, err := svc.Create(ctx, validStudent())
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, types.ListStudentsRequest{PageSize: 0})
	require.NoError(t, err)
	assert.Len(t, resp.Students, 3, "default applies to zero")

	resp, err = svc.List(ctx, types.ListStudentsRequest{PageSize: -7})
	require.NoError(t, err)
	assert.Len(t, resp.Students, 3, "default applies to negatives")

	resp, err = svc.List(ctx, types.ListStudentsRequest{PageSize: 1000})
	require.NoError(t, err)
	assert.Len(t, resp.Students, 4, "large sizes are clamped")
	assert.NotEmpty(t, resp.NextPageToken)
}

func TestListEmptyStore(t *testing.T) {
	resp, err := newTestService().List(context.Background(), types.ListStudentsRequest{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Students)
	assert.Empty(t, resp.Students)
	assert.Empty(t, resp.NextPageToken)
	assert.Zero(t, resp.TotalCount)
}

func TestListInvalidToken(t *testing.T) {
	svc := newTestService()

	for _, token := range []string{"%%%", encodeRaw("no-prefix"), encodeRaw("v1:")} {
		_, err := svc.List(context.Background(), types.ListStudentsRequest{PageToken: token})
		require.Error(t, err, token)
		assert.True(t, IsInvalidArgument(err))
		assert.Equal(t, "invalid page token", Message(err))
	}
}

func TestListSurvivesDeletionBetweenPages(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	for i := 0; i < 4; i++ {
		_, err := svc.Create(ctx, validStudent())
		require.NoError(t, err)
	}

	first, err := svc.List(ctx, types.ListStudentsRequest{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, first.Students, 2)

	// Removing an already-served record must not hide unserved ones.
	_, err = svc.Delete(ctx, first.Students[0].ID)
	require.NoError(t, err)

	second, err := svc.List(ctx, types.ListStudentsRequest{PageSize: 2, PageToken: first.NextPageToken})
	require.NoError(t, err)
	assert.Len(t, second.Students, 2)
	assert.Equal(t, int32(3), second.TotalCount)
	assert.Empty(t, second.NextPageToken)
}

func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.Create(ctx, types.Student{Name: "Alice", Email: "alice@x.edu", Age: 20, Major: "CS", GPA: 3.8})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Alice", created.Name)

	list, err := svc.List(ctx, types.ListStudentsRequest{PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int32(1), list.TotalCount)
	require.Len(t, list.Students, 1)
	assert.Equal(t, created, list.Students[0])

	next := created
	next.GPA = 3.9
	updated, err := svc.Update(ctx, next)
	require.NoError(t, err)
	assert.Equal(t, 3.9, updated.GPA)
	assert.Equal(t, created.ID, updated.ID)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted.Success)

	_, err = svc.Get(ctx, created.ID)
	assert.True(t, IsNotFound(err))
}

func TestStorageFailuresAreInternal(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")
	svc := New(failingStore{err: boom}, Options{})

	_, err := svc.Create(ctx, validStudent())
	assert.Equal(t, KindInternal, KindOf(err))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "internal error", Message(err))

	_, err = svc.Get(ctx, "x")
	assert.Equal(t, KindInternal, KindOf(err))

	_, err = svc.Delete(ctx, "x")
	assert.Equal(t, KindInternal, KindOf(err))

	_, err = svc.List(ctx, types.ListStudentsRequest{})
	assert.Equal(t, KindInternal, KindOf(err))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "INVALID_ARGUMENT", KindInvalidArgument.String())
	assert.Equal(t, "NOT_FOUND", KindNotFound.String())
	assert.Equal(t, "INTERNAL", KindInternal.String())
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}
