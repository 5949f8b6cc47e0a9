package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"remedial:create",
		"remedial:view-own",
		"answers:record",
		"answers:view-own",
		"performance:view-own",
		"questions:view",
		"user:change_password",
	},
	"teacher": {
		"remedial:view-all",
		"answers:view-all",
		"performance:view-all",
		"questions:view",
		"questions:manage",
		"users:bulk_upsert",
		"users:list",
	},
	"admin": {
		"*", // everything
	},
}
