package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/hatkhataapp/hatkhata-server/internal/domain"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/user",
		Summary:     "Get user",
		Description: "Returns the profile and onboarding state",
		Tags:        []string{"User"},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProfile",
		Method:      http.MethodPatch,
		Path:        "/api/v1/user/profile",
		Summary:     "Update profile",
		Description: "Updates profile fields",
		Tags:        []string{"User"},
	}, s.handleUpdateProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "completeOnboarding",
		Method:      http.MethodPost,
		Path:        "/api/v1/user/onboarding",
		Summary:     "Complete onboarding",
		Description: "Resets the profile to the given name and marks onboarding done",
		Tags:        []string{"User"},
	}, s.handleCompleteOnboarding)

	huma.Register(s.api, huma.Operation{
		OperationID: "signOut",
		Method:      http.MethodPost,
		Path:        "/api/v1/user/signout",
		Summary:     "Sign out",
		Description: "Clears the profile and onboarding state",
		Tags:        []string{"User"},
	}, s.handleSignOut)
}

// === DTOs ===

type UserResponse struct {
	Profile     domain.UserProfile `json:"profile" doc:"User profile"`
	IsOnboarded bool               `json:"is_onboarded" doc:"Whether onboarding is complete"`
}

type UserOutput struct {
	Body UserResponse
}

type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100" doc:"Display name"`
	Username *string `json:"username,omitempty" validate:"omitempty,max=50" doc:"Username"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email" doc:"Email address"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30" doc:"Phone number"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=500" doc:"Short bio"`
	Avatar   *string `json:"avatar,omitempty" doc:"Avatar reference"`
}

type UpdateProfileInput struct {
	Body UpdateProfileRequest
}

type OnboardingRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100" doc:"Display name"`
}

type OnboardingInput struct {
	Body OnboardingRequest
}

// === Handlers ===

func (s *Server) handleGetUser(_ context.Context, _ *struct{}) (*UserOutput, error) {
	return &UserOutput{
		Body: UserResponse{
			Profile:     s.store.User.Profile(),
			IsOnboarded: s.store.User.IsOnboarded(),
		},
	}, nil
}

func (s *Server) handleUpdateProfile(_ context.Context, input *UpdateProfileInput) (*UserOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	profile := s.store.User.SetProfile(domain.ProfilePatch{
		Name:     input.Body.Name,
		Username: input.Body.Username,
		Email:    input.Body.Email,
		Phone:    input.Body.Phone,
		Bio:      input.Body.Bio,
		Avatar:   input.Body.Avatar,
	})

	return &UserOutput{
		Body: UserResponse{
			Profile:     profile,
			IsOnboarded: s.store.User.IsOnboarded(),
		},
	}, nil
}

func (s *Server) handleCompleteOnboarding(_ context.Context, input *OnboardingInput) (*UserOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	profile := s.store.User.CompleteOnboarding(input.Body.Name)

	return &UserOutput{
		Body: UserResponse{
			Profile:     profile,
			IsOnboarded: true,
		},
	}, nil
}

func (s *Server) handleSignOut(_ context.Context, _ *struct{}) (*struct{}, error) {
	s.store.User.SignOut()
	return nil, nil
}
