package dto

import "github.com/princinho/schoolpanel/models"

// UpdateUserDTO fields are all optional.
type UpdateUserDTO struct {
	FullName *string `json:"full_name"`
	Role     *string `json:"role" binding:"omitempty,role"`
	IsActive *bool   `json:"is_active"`
}

func (d UpdateUserDTO) Patch() models.UserPatch {
	p := models.UserPatch{FullName: d.FullName, IsActive: d.IsActive}
	if d.Role != nil {
		if role, ok := models.ParseRole(*d.Role); ok {
			p.Role = &role
		}
	}
	return p
}
