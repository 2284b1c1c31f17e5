package user

import (
	coreuser "github.com/rowalls/uh-internal-project/internal/core/user"
	userDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/user"
)

// Onboarding steps a new technician works through. Orientation comes last.
const (
	StepOnity       = "onity"
	StepSRS         = "srs"
	StepPayroll     = "payroll"
	StepOrientation = "orientation"
)

// NewTechnician replaces the group-derived specializations of anyone still
// in onboarding.
const NewTechnician = "New Technician"

func FromDataModel(u *userDatamodel.User) *coreuser.User {
	groups := make([]coreuser.Group, 0, len(u.Groups))
	for _, g := range u.Groups {
		groups = append(groups, coreuser.Group{
			ID:                g.ID,
			DistinguishedName: g.DistinguishedName,
			DisplayName:       g.DisplayName,
		})
	}
	out := &coreuser.User{
		ID:                  u.ID,
		Username:            u.Username,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Email:               u.Email,
		IsActive:            u.IsActive,
		OnityComplete:       u.OnityComplete,
		SRSComplete:         u.SRSComplete,
		PayrollComplete:     u.PayrollComplete,
		OrientationComplete: u.OrientationComplete,
		LastLogin:           u.LastLogin,
		Groups:              groups,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
	if u.Flair != nil {
		out.Flair = u.Flair.Flair
	}
	return out
}
