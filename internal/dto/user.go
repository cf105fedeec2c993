package dto

import "github.com/Samuel04-png/aether-api/internal/models"

// UnknownUserName is the placeholder shown when a referenced user record is
// missing or was never loaded.
const UnknownUserName = "Unknown User"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64 `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
	}
	if dto.DisplayName == "" {
		dto.DisplayName = UnknownUserName
	}
	return dto
}
