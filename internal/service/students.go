// Package service is the request handler that sits between the transports
// (gRPC, HTTP) and the record store.
//
// All input validation lives here, never in the store. Every operation
// follows the same shape:
//
//	validate → one store call → map the outcome to a result or *Error
//
// No lock is held while validating, and no request makes more than one
// store call, so no cross-call state or rollback is involved.
package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/students-grpc/internal/storage"
	"github.com/aanand-mishra/students-grpc/internal/types"
)

// Page size bounds used when Options leaves them unset.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Options tunes List pagination.
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Students validates and dispatches student CRUD requests.
// It is safe for concurrent use.
type Students struct {
	store    storage.Storage
	validate *validator.Validate
	opts     Options
}

// New returns a Students handler over store. Zero fields in opts fall back
// to DefaultPageSize and MaxPageSize.
func New(store storage.Storage, opts Options) *Students {
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = DefaultPageSize
	}
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = MaxPageSize
	}
	if opts.MaxPageSize < opts.DefaultPageSize {
		opts.MaxPageSize = opts.DefaultPageSize
	}

	return &Students{
		store:    store,
		validate: newValidator(),
		opts:     opts,
	}
}

// Create validates student and stores it under a new id. Any id on the
// payload is ignored.
func (s *Students) Create(ctx context.Context, student types.Student) (types.Student, error) {
	if err := s.validateStudent(student); err != nil {
		slog.Debug("rejected create", slog.String("error", err.Error()))
		return types.Student{}, err
	}

	student.ID = ""
	created, err := s.store.CreateStudent(ctx, student)
	if err != nil {
		slog.Error("error creating student", slog.String("error", err.Error()))
		return types.Student{}, internal(err)
	}

	slog.Info("student created",
		slog.String("id", created.ID),
		slog.String("name", created.Name))
	return created, nil
}

// Get returns the student stored under id.
func (s *Students) Get(ctx context.Context, id string) (types.Student, error) {
	if err := validateID(id); err != nil {
		return types.Student{}, err
	}

	student, err := s.store.GetStudentByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return types.Student{}, notFound("student not found")
	}
	if err != nil {
		slog.Error("error getting student",
			slog.String("id", id),
			slog.String("error", err.Error()))
		return types.Student{}, internal(err)
	}

	slog.Debug("student retrieved", slog.String("id", id))
	return student, nil
}

// Update replaces every field of the student identified by student.ID.
func (s *Students) Update(ctx context.Context, student types.Student) (types.Student, error) {
	if err := validateID(student.ID); err != nil {
		return types.Student{}, err
	}
	if err := s.validateStudent(student); err != nil {
		slog.Debug("rejected update",
			slog.String("id", student.ID),
			slog.String("error", err.Error()))
		return types.Student{}, err
	}

	updated, err := s.store.UpdateStudentByID(ctx, student.ID, student)
	if errors.Is(err, storage.ErrNotFound) {
		return types.Student{}, notFound("student not found")
	}
	if err != nil {
		slog.Error("error updating student",
			slog.String("id", student.ID),
			slog.String("error", err.Error()))
		return types.Student{}, internal(err)
	}

	slog.Info("student updated", slog.String("id", updated.ID))
	return updated, nil
}

// Delete removes the student identified by id. A missing id is reported
// through Success=false, not as an error.
func (s *Students) Delete(ctx context.Context, id string) (types.DeleteStudentResponse, error) {
	if err := validateID(id); err != nil {
		return types.DeleteStudentResponse{}, err
	}

	removed, ok, err := s.store.DeleteStudentByID(ctx, id)
	if err != nil {
		slog.Error("error deleting student",
			slog.String("id", id),
			slog.String("error", err.Error()))
		return types.DeleteStudentResponse{}, internal(err)
	}

	if !ok {
		slog.Info("delete found nothing", slog.String("id", id))
		return types.DeleteStudentResponse{
			Success: false,
			Message: fmt.Sprintf("student %s not found", id),
		}, nil
	}

	slog.Info("student deleted", slog.String("id", id))
	return types.DeleteStudentResponse{
		Success: true,
		Message: fmt.Sprintf("student %s deleted", removed.Name),
	}, nil
}

// List returns one page of students in id order.
//
// Each call works on a fresh snapshot. Records created or deleted between
// two calls may shift later pages; the token carries the last id served,
// so a deletion never causes a surviving record to be skipped.
func (s *Students) List(ctx context.Context, req types.ListStudentsRequest) (types.ListStudentsResponse, error) {
	after, err := decodePageToken(req.PageToken)
	if err != nil {
		return types.ListStudentsResponse{}, err
	}

	size := int(req.PageSize)
	switch {
	case size <= 0:
		size = s.opts.DefaultPageSize
	case size > s.opts.MaxPageSize:
		size = s.opts.MaxPageSize
	}

	snapshot, err := s.store.GetStudents(ctx)
	if err != nil {
		slog.Error("error listing students", slog.String("error", err.Error()))
		return types.ListStudentsResponse{}, internal(err)
	}

	slices.SortFunc(snapshot, func(a, b types.Student) int {
		return cmp.Compare(a.ID, b.ID)
	})

	start := 0
	if after != "" {
		start = sort.Search(len(snapshot), func(i int) bool {
			return snapshot[i].ID > after
		})
	}
	end := min(start+size, len(snapshot))

	page := make([]types.Student, end-start)
	copy(page, snapshot[start:end])

	resp := types.ListStudentsResponse{
		Students:   page,
		TotalCount: int32(len(snapshot)),
	}
	if end < len(snapshot) {
		resp.NextPageToken = encodePageToken(snapshot[end-1].ID)
	}

	slog.Debug("students listed",
		slog.Int("returned", len(resp.Students)),
		slog.Int("total", len(snapshot)),
		slog.Bool("more", resp.NextPageToken != ""))
	return resp, nil
}
