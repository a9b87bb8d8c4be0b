// Package privilege manages named privileges.
//
// Privileges are created lazily on first reference and deleted explicitly by
// name. Roles hold privileges by reference, so deleting a privilege only
// detaches it from the roles that referenced it.
//
//	repo := privilege.NewInMemoryPrivilegeRepository()
//	svc := privilege.NewPrivilegeService(repo)
//
//	read, err := svc.CreatePrivilegeIfNotFound(ctx, "READ_PRIVILEGE")
//	msg, err := svc.DeletePrivilege(ctx, "READ_PRIVILEGE") // "Privilege deleted."
package privilege
