package usecase

import "vidtube/internal/domain/model"

// UserDTOはAPI返却用のユーザー。password hashとrefresh tokenは絶対に載せない
type UserDTO struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	Avatar     string `json:"avatar"`
	CoverImage string `json:"coverImage"`
}

// model.UserをAPI返却用DTOに変換
func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
	}
}

type SuccessResponse struct {
	Message string `json:"message"`
}
