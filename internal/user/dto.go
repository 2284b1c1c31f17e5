package user

import (
	"time"

	coreuser "github.com/rowalls/uh-internal-project/internal/core/user"
)

type OnboardingStatus struct {
	Onity       bool `json:"onity"`
	SRS         bool `json:"srs"`
	Payroll     bool `json:"payroll"`
	Orientation bool `json:"orientation"`
}

type ProfileResponse struct {
	ID              int64            `json:"id"`
	Username        string           `json:"username"`
	Alias           string           `json:"alias"`
	FullName        string           `json:"full_name"`
	Email           string           `json:"email"`
	Specializations []string         `json:"specializations"`
	Onboarding      OnboardingStatus `json:"onboarding"`
	LastLogin       *time.Time       `json:"last_login,omitempty"`
}

func NewProfileResponse(u *coreuser.User, specializations []string) *ProfileResponse {
	if specializations == nil {
		specializations = []string{}
	}
	return &ProfileResponse{
		ID:              u.ID,
		Username:        u.Username,
		Alias:           u.Alias(),
		FullName:        u.FullName(),
		Email:           u.Email,
		Specializations: specializations,
		Onboarding: OnboardingStatus{
			Onity:       u.OnityComplete,
			SRS:         u.SRSComplete,
			Payroll:     u.PayrollComplete,
			Orientation: u.OrientationComplete,
		},
		LastLogin: u.LastLogin,
	}
}
