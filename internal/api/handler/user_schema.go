package handler

import (
	"github.com/userhub/user-service/internal/core/domain"
	"github.com/userhub/user-service/internal/core/ports"
)

type createUserRequest struct {
	Email        string `json:"email"        validate:"required,email"`
	Name         string `json:"name"         validate:"required,max=100"`
	LastName     string `json:"lastName"     validate:"omitempty,max=100"`
	Password     string `json:"password"     validate:"required,min=6,maxbytes=72"`
	Company      string `json:"company"      validate:"omitempty,max=200"`
	ProfileImage string `json:"profileImage" validate:"omitempty,max=2048"`
	Position     string `json:"position"     validate:"omitempty,max=200"`
}

// registerRequest is the reduced sign-up form: no profile fields.
type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,max=100"`
	LastName string `json:"lastName" validate:"omitempty,max=100"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Email        *string `json:"email"        validate:"omitempty,email"`
	Name         *string `json:"name"         validate:"omitempty,min=1,max=100"`
	LastName     *string `json:"lastName"     validate:"omitempty,max=100"`
	Password     *string `json:"password"     validate:"omitempty,min=6,maxbytes=72"`
	Company      *string `json:"company"      validate:"omitempty,max=200"`
	ProfileImage *string `json:"profileImage" validate:"omitempty,max=2048"`
	Position     *string `json:"position"     validate:"omitempty,max=200"`
}

type authResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type checkTokenResponse struct {
	Status string       `json:"status"`
	User   *domain.User `json:"user"`
	Token  string       `json:"token"`
}

func (r createUserRequest) toInput() ports.CreateUserInput {
	return ports.CreateUserInput{
		Email:        r.Email,
		Name:         r.Name,
		LastName:     r.LastName,
		Password:     r.Password,
		Company:      r.Company,
		ProfileImage: r.ProfileImage,
		Position:     r.Position,
	}
}

func (r registerRequest) toInput() ports.CreateUserInput {
	return ports.CreateUserInput{
		Email:    r.Email,
		Name:     r.Name,
		LastName: r.LastName,
		Password: r.Password,
	}
}

func (r updateUserRequest) toInput() ports.UpdateUserInput {
	return ports.UpdateUserInput{
		Email:        r.Email,
		Name:         r.Name,
		LastName:     r.LastName,
		Password:     r.Password,
		Company:      r.Company,
		ProfileImage: r.ProfileImage,
		Position:     r.Position,
	}
}
