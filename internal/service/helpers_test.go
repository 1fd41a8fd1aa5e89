package service

import (
	"context"
	"encoding/base64"

	"github.com/aanand-mishra/students-grpc/internal/types"
)

func encodeRaw(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

// failingStore fails every call with err.
type failingStore struct {
	err error
}

func (f failingStore) CreateStudent(context.Context, types.Student) (types.Student, error) {
	return types.Student{}, f.err
}

func (f failingStore) GetStudentByID(context.Context, string) (types.Student, error) {
	return types.Student{}, f.err
}

func (f failingStore) GetStudents(context.Context) ([]types.Student, error) {
	return nil, f.err
}

func (f failingStore) UpdateStudentByID(context.Context, string, types.Student) (types.Student, error) {
	return types.Student{}, f.err
}

func (f failingStore) DeleteStudentByID(context.Context, string) (types.Student, bool, error) {
	return types.Student{}, false, f.err
}

func (f failingStore) Count(context.Context) (int, error) {
	return 0, f.err
}
