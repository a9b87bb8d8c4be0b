// Package role manages named roles and the privileges they reference.
//
// A role is created lazily with CreateRoleIfNotFound. When the role already
// exists it is returned as stored and the privileges passed by the caller are
// ignored; use the repository directly to change an existing role.
package role
