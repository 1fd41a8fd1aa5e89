// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// Selected with storage.driver: "sqlite". Same contract as the memory
// store, but records are kept in a single file on disk.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/students-grpc/internal/config"
	"github.com/aanand-mishra/students-grpc/internal/storage"
	"github.com/aanand-mishra/students-grpc/internal/types"
)

// maxIDAttempts bounds the primary-key collision retry in CreateStudent.
const maxIDAttempts = 3

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the SQLite database at cfg.Storage.Path, creates the students
// table if it does not already exist, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// SQLite allows a single writer at a time. One pooled connection also
	// keeps ":memory:" databases from splitting into one DB per connection.
	db.SetMaxOpenConns(1)

	// id is a UUID string generated by the application.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id    TEXT    PRIMARY KEY,
			name  TEXT    NOT NULL,
			email TEXT    NOT NULL,
			age   INTEGER NOT NULL,
			major TEXT    NOT NULL,
			gpa   REAL    NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// CreateStudent inserts a new row under a freshly generated UUID.
// Placeholders (?) keep user input out of the SQL text.
func (s *SQLite) CreateStudent(ctx context.Context, student types.Student) (types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"INSERT INTO students (id, name, email, age, major, gpa) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	for attempt := 1; ; attempt++ {
		student.ID = uuid.NewString()
		_, err = stmt.ExecContext(ctx,
			student.ID, student.Name, student.Email, student.Age, student.Major, student.GPA)
		if err == nil {
			return student, nil
		}
		if !isPrimaryKeyViolation(err) || attempt == maxIDAttempts {
			return types.Student{}, fmt.Errorf("CreateStudent: exec: %w", err)
		}
	}
}

func isPrimaryKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// GetStudentByID fetches exactly one student row matched by primary key.
func (s *SQLite) GetStudentByID(ctx context.Context, id string) (types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT id, name, email, age, major, gpa FROM students WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	var student types.Student
	err = stmt.QueryRowContext(ctx, id).Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.Age,
		&student.Major,
		&student.GPA,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, storage.ErrNotFound
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// GetStudents returns all student rows, ordered by id.
func (s *SQLite) GetStudents(ctx context.Context) ([]types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT id, name, email, age, major, gpa FROM students ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		var student types.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Email,
			&student.Age,
			&student.Major,
			&student.GPA,
		); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// UpdateStudentByID replaces a student's data with the provided values.
// The id column is never touched.
func (s *SQLite) UpdateStudentByID(ctx context.Context, id string, student types.Student) (types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"UPDATE students SET name = ?, email = ?, age = ?, major = ?, gpa = ? WHERE id = ?",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		student.Name, student.Email, student.Age, student.Major, student.GPA, id)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: rows affected: %w", err)
	}
	if n == 0 {
		return types.Student{}, storage.ErrNotFound
	}

	student.ID = id
	return student, nil
}

// DeleteStudentByID removes a student row by primary key. The row is read
// and deleted in one transaction so the returned record is the one removed.
func (s *SQLite) DeleteStudentByID(ctx context.Context, id string) (types.Student, bool, error) {
	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return types.Student{}, false, fmt.Errorf("DeleteStudentByID: begin: %w", err)
	}
	defer tx.Rollback()

	var student types.Student
	err = tx.QueryRowContext(ctx,
		"SELECT id, name, email, age, major, gpa FROM students WHERE id = ?", id,
	).Scan(&student.ID, &student.Name, &student.Email, &student.Age, &student.Major, &student.GPA)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Student{}, false, nil
	}
	if err != nil {
		return types.Student{}, false, fmt.Errorf("DeleteStudentByID: select: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM students WHERE id = ?", id); err != nil {
		return types.Student{}, false, fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return types.Student{}, false, fmt.Errorf("DeleteStudentByID: commit: %w", err)
	}

	return student, true, nil
}

// Count returns the number of rows in the students table.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.Db.QueryRowContext(ctx, "SELECT COUNT(*) FROM students").Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: scan: %w", err)
	}
	return n, nil
}
