// Package storage defines the Storage interface, the contract that any
// record store must satisfy to work with this application.
//
// The request handler (internal/service) depends only on this interface;
// storage.driver in the config file picks the implementation.
//
// CONTRACT FOR ALL IMPLEMENTATIONS:
//   - Safe for concurrent use by multiple goroutines.
//   - Callers receive copies. Mutating a returned Student never changes
//     what is stored.
//   - No validation happens here. Payloads are validated before they
//     reach the store.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/students-grpc/internal/types"
)

// ErrNotFound is returned when no student exists with the requested id.
var ErrNotFound = errors.New("storage: student not found")

// Storage is the record store contract.
type Storage interface {
	// CreateStudent stores a new record under a freshly generated id.
	// Any id on the incoming student is ignored. Returns the stored record.
	CreateStudent(ctx context.Context, student types.Student) (types.Student, error)

	// GetStudentByID fetches a single student.
	// Returns ErrNotFound if no record exists with that id.
	GetStudentByID(ctx context.Context, id string) (types.Student, error)

	// GetStudents returns a snapshot of every student, ordered by id.
	// Returns an empty slice (not nil) if there are no students.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// UpdateStudentByID replaces every field of an existing student except
	// the id. Returns ErrNotFound if no record exists with that id.
	UpdateStudentByID(ctx context.Context, id string, student types.Student) (types.Student, error)

	// DeleteStudentByID removes a student. The bool reports whether a
	// record was actually removed; a missing id is not an error.
	DeleteStudentByID(ctx context.Context, id string) (types.Student, bool, error)

	// Count returns the number of stored students.
	Count(ctx context.Context) (int, error)
}
