package models

// Permission names gating write and admin actions
const (
	PermDisputesCreate   = "disputes.create"
	PermDisputesUpdate   = "disputes.update"
	PermDisputesDelete   = "disputes.delete"
	PermLitigationCreate = "litigation.create"
	PermLitigationDelete = "litigation.delete"
	PermAdminManage      = "admin.manage"
)

// DefaultAdminPermissions is granted to the configured default admin account
var DefaultAdminPermissions = []string{
	PermDisputesCreate,
	PermDisputesUpdate,
	PermDisputesDelete,
	PermLitigationCreate,
	PermLitigationDelete,
	PermAdminManage,
}
