// Package student contains the JSON/HTTP gateway for the student service.
//
// The gateway mirrors the gRPC API one-to-one and goes through the same
// service.Students handler, so validation and error semantics are shared.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// To inject the service we use a factory that accepts it and returns a
// function with the exact signature the router needs:
//
//	router.HandleFunc("POST /api/students", student.New(students))
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/students-grpc/internal/service"
	"github.com/aanand-mishra/students-grpc/internal/types"
	"github.com/aanand-mishra/students-grpc/internal/utils/response"
)

// Register mounts every student route on router.
//
//	POST   /api/students        → create a new student
//	GET    /api/students        → list students (page_size, page_token)
//	GET    /api/students/{id}   → get one student by ID
//	PUT    /api/students/{id}   → update a student
//	DELETE /api/students/{id}   → delete a student
func Register(router *http.ServeMux, students *service.Students) {
	router.HandleFunc("POST /api/students", New(students))
	router.HandleFunc("GET /api/students", GetList(students))
	router.HandleFunc("GET /api/students/{id}", GetByID(students))
	router.HandleFunc("PUT /api/students/{id}", Update(students))
	router.HandleFunc("DELETE /api/students/{id}", Delete(students))
}

// decodeStudent reads a Student from the request body, writing a 400 and
// returning false when the body is empty or malformed.
func decodeStudent(w http.ResponseWriter, r *http.Request) (types.Student, bool) {
	var student types.Student

	err := json.NewDecoder(r.Body).Decode(&student)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return types.Student{}, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return types.Student{}, false
	}

	return student, true
}

// New handles POST /api/students.
//
// Request body (JSON):
//
//	{ "name": "Alice", "email": "alice@x.edu", "age": 20, "major": "CS", "gpa": 3.8 }
//
// Success response (201 Created): the stored student, including its id.
func New(students *service.Students) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("creating a student")

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		created, err := students.Create(r.Context(), student)
		if err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetByID handles GET /api/students/{id}.
func GetByID(students *service.Students) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Debug("getting a student", slog.String("id", id))

		student, err := students.Get(r.Context(), id)
		if err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// GetList handles GET /api/students?page_size=10&page_token=...
//
// Success response (200 OK):
//
//	{ "students": [...], "next_page_token": "...", "total_count": 42 }
func GetList(students *service.Students) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		var req types.ListStudentsRequest
		if raw := query.Get("page_size"); raw != "" {
			size, err := strconv.ParseInt(raw, 10, 32)
			if err != nil {
				response.WriteJSON(w, http.StatusBadRequest,
					response.GeneralError(errors.New("invalid page_size: must be an integer")))
				return
			}
			req.PageSize = int32(size)
		}
		req.PageToken = query.Get("page_token")

		slog.Debug("listing students", slog.Int("page_size", int(req.PageSize)))

		page, err := students.List(r.Context(), req)
		if err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, page)
	}
}

// Update handles PUT /api/students/{id}.
// Replaces ALL fields of an existing student; the id in the path wins over
// any id in the body.
func Update(students *service.Students) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Debug("updating a student", slog.String("id", id))

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}
		student.ID = id

		updated, err := students.Update(r.Context(), student)
		if err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /api/students/{id}.
//
// Always 200 once the id is well-formed:
//
//	{ "success": true,  "message": "student Alice deleted" }
//	{ "success": false, "message": "student 42 not found" }
func Delete(students *service.Students) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Debug("deleting a student", slog.String("id", id))

		result, err := students.Delete(r.Context(), id)
		if err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, result)
	}
}
