// Package user stores users and their hashed credentials.
//
// UserService.ChangePassword walks a fixed sequence: the user must exist, the
// new password must equal its confirmation, and the new password must verify
// against the stored hash. Only then is the stored hash rewritten. The
// current password carried in ChangePasswordParams is not consulted.
//
// Business rejections come back as a PasswordChangeStatus with a nil error.
// A missing user is an ErrCodeUserNotFound error.
package user
