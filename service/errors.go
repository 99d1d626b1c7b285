package service

import (
	"fmt"
	"strings"
)

// Kind classifies a service error for transport mapping.
type Kind int

const (
	KindInvalid Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
)

// Error is a domain failure with a stable code and a client-facing message.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidToken        = &Error{KindUnauthorized, "INVALID_TOKEN", "Invalid or expired token"}
	ErrTokenExpired        = &Error{KindUnauthorized, "TOKEN_EXPIRED", "Token expired"}
	ErrInvalidCredentials  = &Error{KindUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials"}
	ErrInvalidRefreshToken = &Error{KindUnauthorized, "INVALID_REFRESH_TOKEN", "Invalid refresh token"}

	ErrUserDisabled    = &Error{KindForbidden, "USER_DISABLED", "User disabled"}
	ErrAccountDisabled = &Error{KindForbidden, "ACCOUNT_DISABLED", "Account disabled"}
	ErrAdminRequired   = &Error{KindForbidden, "ADMIN_REQUIRED", "Admin access required"}

	ErrEmailTaken = &Error{KindInvalid, "EMAIL_TAKEN", "Email already registered"}
	ErrNoFiles    = &Error{KindInvalid, "MISSING_FILE", "At least one file is required"}
	ErrBadFile    = &Error{KindInvalid, "INVALID_FILENAME", "Invalid filename"}

	ErrCourseTitleTaken = &Error{KindInvalid, "COURSE_TITLE_TAKEN", "Course title must be unique"}

	ErrDisputeNotFound = &Error{KindNotFound, "DISPUTE_NOT_FOUND", "Dispute not found"}
	ErrCaseNotFound    = &Error{KindNotFound, "CASE_NOT_FOUND", "Case not found"}
	ErrUserNotFound    = &Error{KindNotFound, "USER_NOT_FOUND", "User not found"}
	ErrFileNotFound    = &Error{KindNotFound, "FILE_NOT_FOUND", "File not found"}
	ErrCourseNotFound  = &Error{KindNotFound, "COURSE_NOT_FOUND", "Course not found"}
)

// MissingPermissions lists the permissions a user lacks.
func MissingPermissions(missing []string) *Error {
	return &Error{
		Kind:    KindForbidden,
		Code:    "MISSING_PERMISSIONS",
		Message: fmt.Sprintf("Missing permissions: %s", strings.Join(missing, ", ")),
	}
}
