package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"paper:create",
		"answers:submit",
		"tags:view",
		"performance:view-own",
		"reports:view-own",
		"user:change_password",
	},
	"teacher": {
		"paper:create",
		"tags:view",
		"question:create",
		"question:view",
		"question:delete",
		"performance:view-all",
		"reports:view-all",
		"users:list",
		"user:change_password",
	},
	"admin": {
		"*", // everything
	},
}
