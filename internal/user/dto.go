// AngelaMos | 2026
// dto.go

package user

type SetRoleRequest struct {
	UserID string `json:"userId" validate:"required"`
	Role   string `json:"role"   validate:"required,oneof=student instructor"`
}

type UserResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	ImageURL        string   `json:"imageUrl"`
	Role            string   `json:"role"`
	EnrolledCourses []string `json:"enrolledCourses"`
}

func ToUserResponse(u *User) UserResponse {
	enrolled := []string(u.EnrolledCourses)
	if enrolled == nil {
		enrolled = []string{}
	}
	return UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		ImageURL:        u.ImageURL,
		Role:            u.Role,
		EnrolledCourses: enrolled,
	}
}

type RoleResponse struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}
