// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, the gRPC layer, and utils can all import types
// without depending on each other.
package types

// Student represents a student record in our system.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — the wire names. They are shared by the HTTP gateway
//     and the gRPC JSON codec, so they must match the RPC schema exactly.
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package. "notblank" and "mailbox" are registered by the service
//     package; min/max are built in. Field ORDER matters: validator
//     reports failures in declaration order and the service surfaces
//     the first one.
type Student struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"  validate:"notblank"`
	Email string  `json:"email" validate:"mailbox"`
	Age   int32   `json:"age"   validate:"min=0,max=150"`
	Major string  `json:"major" validate:"notblank"`
	GPA   float64 `json:"gpa"   validate:"min=0,max=4"`
}

// GetStudentRequest is the GetStudent RPC input.
type GetStudentRequest struct {
	ID string `json:"id"`
}

// DeleteStudentRequest is the DeleteStudent RPC input.
type DeleteStudentRequest struct {
	ID string `json:"id"`
}

// DeleteStudentResponse reports whether a record was actually removed.
// Deleting a missing id is NOT an error: Success is false and Message
// explains why.
type DeleteStudentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListStudentsRequest is the ListStudents RPC input.
//
// PageSize <= 0 means "use the default". An empty PageToken starts from
// the first record.
type ListStudentsRequest struct {
	PageSize  int32  `json:"page_size"`
	PageToken string `json:"page_token"`
}

// ListStudentsResponse carries one page of students.
//
// NextPageToken is empty once the listing is exhausted. TotalCount is the
// number of records in the snapshot the page was cut from.
type ListStudentsResponse struct {
	Students      []Student `json:"students"`
	NextPageToken string    `json:"next_page_token"`
	TotalCount    int32     `json:"total_count"`
}
