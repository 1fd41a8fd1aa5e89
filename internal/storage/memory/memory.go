// Package memory provides the in-process implementation of the
// storage.Storage interface.
//
// Records live in a B-tree ordered by id (github.com/google/btree), guarded
// by a sync.RWMutex:
//
//   - Reads (get, list, count) take the shared lock, so any number of
//     them run in parallel.
//   - Writes (create, update, delete) take the exclusive lock for the
//     duration of a single record mutation.
//
// Nothing is persisted. The store starts empty and its contents vanish
// when the process exits.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/btree"
	"github.com/google/uuid"

	"github.com/aanand-mishra/students-grpc/internal/storage"
	"github.com/aanand-mishra/students-grpc/internal/types"
)

// degree of the B-tree.
const degree = 32

// maxIDAttempts bounds the id collision retry in CreateStudent.
const maxIDAttempts = 3

// ErrIDCollision is returned when every generated id was already taken.
var ErrIDCollision = errors.New("memory: generated id already in use")

// Memory is the concrete in-memory implementation of storage.Storage.
//
// types.Student holds only value fields, so every Student handed in or out
// of the tree is a copy. Callers can never reach stored state.
type Memory struct {
	mu    sync.RWMutex
	tree  *btree.BTreeG[types.Student]
	newID func() string
}

// Compile-time proof that *Memory satisfies the interface.
var _ storage.Storage = (*Memory)(nil)

func byID(a, b types.Student) bool { return a.ID < b.ID }

// New returns an empty store that generates random (v4) UUIDs.
func New() *Memory {
	return NewWithIDFunc(uuid.NewString)
}

// NewWithIDFunc returns an empty store that uses newID to mint identifiers.
func NewWithIDFunc(newID func() string) *Memory {
	return &Memory{
		tree:  btree.NewG(degree, byID),
		newID: newID,
	}
}

// CreateStudent stores student under a freshly generated id, drawing again
// if the id is already taken, up to maxIDAttempts times.
func (m *Memory) CreateStudent(_ context.Context, student types.Student) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for attempt := 1; ; attempt++ {
		student.ID = m.newID()
		if !m.tree.Has(student) {
			break
		}
		if attempt == maxIDAttempts {
			return types.Student{}, fmt.Errorf("CreateStudent: %w after %d attempts", ErrIDCollision, attempt)
		}
	}

	m.tree.ReplaceOrInsert(student)
	return student, nil
}

// GetStudentByID returns a copy of the student stored under id.
func (m *Memory) GetStudentByID(_ context.Context, id string) (types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	student, ok := m.tree.Get(types.Student{ID: id})
	if !ok {
		return types.Student{}, storage.ErrNotFound
	}
	return student, nil
}

// GetStudents returns a snapshot of every record in id order.
func (m *Memory) GetStudents(_ context.Context) ([]types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	students := make([]types.Student, 0, m.tree.Len())
	m.tree.Ascend(func(s types.Student) bool {
		students = append(students, s)
		return true
	})
	return students, nil
}

// UpdateStudentByID replaces the record at id wholesale, keeping the id.
func (m *Memory) UpdateStudentByID(_ context.Context, id string, student types.Student) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	student.ID = id
	if !m.tree.Has(student) {
		return types.Student{}, storage.ErrNotFound
	}

	m.tree.ReplaceOrInsert(student)
	return student, nil
}

// DeleteStudentByID removes the record at id if present.
// Idempotent: deleting a missing id returns false and no error.
func (m *Memory) DeleteStudentByID(_ context.Context, id string) (types.Student, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed, ok := m.tree.Delete(types.Student{ID: id})
	return removed, ok, nil
}

// Count returns the number of stored students.
func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.tree.Len(), nil
}
