package domain

// UserProfile holds the single local user's display identity.
// Name is the only required field; everything else is optional decoration
// for the profile screen.
type UserProfile struct {
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// ProfilePatch describes a partial profile update. Nil fields are left unchanged.
type ProfilePatch struct {
	Name     *string
	Username *string
	Email    *string
	Phone    *string
	Bio      *string
	Avatar   *string
}

// Apply merges the patch into the profile. No validation: the store trusts
// the caller, matching the onboarding/profile screens.
func (p *UserProfile) Apply(patch ProfilePatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Username != nil {
		p.Username = *patch.Username
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}
	if patch.Avatar != nil {
		p.Avatar = *patch.Avatar
	}
}
