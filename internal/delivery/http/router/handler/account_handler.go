// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"taskdeck/internal/delivery/http/middleware"
	"taskdeck/internal/delivery/http/response"
	"taskdeck/internal/domain/entity"
	"taskdeck/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// userResponse is the wire shape of an account.
type userResponse struct {
	ID                string  `json:"id"`
	ExternalUID       string  `json:"externalUid"`
	Email             string  `json:"email,omitempty"`
	Name              string  `json:"name,omitempty"`
	Birthdate         *string `json:"birthdate,omitempty"`
	Occupation        *string `json:"occupation,omitempty"`
	ProfilePictureURL *string `json:"profilePicture,omitempty"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

func newUserResponse(user *entity.User) *userResponse {
	resp := &userResponse{
		ID:                user.ID.String(),
		ExternalUID:       user.ExternalUID,
		Email:             user.Email,
		Name:              user.Name,
		Occupation:        user.Occupation,
		ProfilePictureURL: user.ProfilePictureURL,
		CreatedAt:         user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         user.UpdatedAt.Format(time.RFC3339),
	}
	if user.Birthdate != nil {
		birthdate := user.Birthdate.Format("2006-01-02")
		resp.Birthdate = &birthdate
	}

	return resp
}

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the account registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var input *usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	user, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newUserResponse(user), "Account registered successfully")
}

type loginRequest struct {
	ExternalUID string `json:"externalUid" validate:"required"`
}

// Login resolves an already-authenticated external principal to its local
// account. There is no credential check here; the provider did that when it
// minted the client's token.
func (h *AccountHandler) Login(c echo.Context) error {
	var input *loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	user, err := h.uc.FindByExternalUID(c.Request().Context(), input.ExternalUID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user), "Login successful")
}

// GetUser handles the account lookup request.
func (h *AccountHandler) GetUser(c echo.Context) error {
	externalUID := c.Param("externalUid")

	user, err := h.uc.FindByExternalUID(c.Request().Context(), externalUID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user), "User retrieved successfully")
}

// FindOrCreate handles the create-on-first-contact request used by federated
// sign-in flows.
func (h *AccountHandler) FindOrCreate(c echo.Context) error {
	var input *usecase.FindOrCreateInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	out, err := h.uc.FindOrCreate(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(out.User), "User resolved successfully")
}

// UpdateProfile handles the profile update request. The caller may only edit
// their own account.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	externalUID := c.Param("externalUid")
	if externalUID != middleware.ExternalUID(c) {
		return response.Forbidden(c, "FORBIDDEN", "Cannot modify another user's profile")
	}

	var input *usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), externalUID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user), "Profile updated successfully")
}

// DeleteAccount handles the account deletion request. The caller may only
// delete their own account.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	externalUID := c.Param("externalUid")
	if externalUID != middleware.ExternalUID(c) {
		return response.Forbidden(c, "FORBIDDEN", "Cannot delete another user's account")
	}

	if err := h.uc.DeleteAccount(c.Request().Context(), externalUID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"externalUid": externalUID}, "Account deleted successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
