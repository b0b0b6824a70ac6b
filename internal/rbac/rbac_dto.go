package rbac

type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=hr employee"`
}

type RoleResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
