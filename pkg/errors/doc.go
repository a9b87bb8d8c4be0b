// Package errors provides structured error handling with error codes for simple-rbac.
//
// Services return *Error values for failures the caller must see, and adapters
// wrap driver errors so the original cause stays reachable through errors.Is
// and errors.As.
//
// # Not found
//
// The only typed failure raised by the domain services is the not-found family:
//
//	_, err := roleService.DeleteRole(ctx, "ROLE_GUEST")
//	if errors.IsNotFound(err) {
//		// "Role is not found."
//	}
//
// # Unique violations
//
// Repositories report a violated unique constraint (duplicate email, duplicate
// role or privilege name) with ErrCodeAlreadyExists:
//
//	if errors.IsUniqueViolation(err) {
//		// 409 Conflict
//	}
//
// # HTTP mapping
//
//	var structuredErr *errors.Error
//	if stderrors.As(err, &structuredErr) {
//		status := structuredErr.HTTPStatusCode()
//	}
//
// Mapping:
//   - ErrCodeInvalidInput, ErrCodeValidationFailed → 400 Bad Request
//   - not-found family → 404 Not Found
//   - ErrCodeAlreadyExists → 409 Conflict
//   - anything else → 500 Internal Server Error
package errors
