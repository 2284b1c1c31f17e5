package auth

import (
	"strings"

	errors "github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/internal/core/common/validation"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (d *LoginDTO) Validate() *errors.AppError {
	d.Username = strings.TrimSpace(d.Username)
	v := validation.NewValidator()
	v.Field("username", d.Username).Required().MaxLength(30)
	v.Field("password", d.Password).Required()
	return v.Validate()
}

func (d RefreshTokenDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("refresh_token", d.RefreshToken).Required()
	return v.Validate()
}
