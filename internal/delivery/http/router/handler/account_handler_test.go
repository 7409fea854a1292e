package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	deliverycontext "taskdeck/internal/delivery/context"
	"taskdeck/internal/delivery/http/validator"
	"taskdeck/internal/domain/entity"
	domainerrors "taskdeck/internal/domain/errors"
	mockUsecase "taskdeck/internal/mocks/usecase"
	"taskdeck/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	return e
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testUser() *entity.User {
	return &entity.User{
		ID:          uuid.New(),
		ExternalUID: "fb-uid-123",
		Email:       "dana@example.com",
		Name:        "Dana",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func TestAccountHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	uc := mockUsecase.NewMockAccountUsecase(t)
	h := NewAccountHandler(uc, newDiscardLogger())

	body := `{"externalUid":"fb-uid-123","email":"dana@example.com","name":"Dana"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	uc.EXPECT().
		Register(req.Context(), mock.AnythingOfType("*usecase.RegisterInput")).
		Return(testUser(), nil)

	err := h.Register(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"externalUid":"fb-uid-123"`)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestAccountHandler_Register_MissingEmail(t *testing.T) {
	e := newTestEcho()
	uc := mockUsecase.NewMockAccountUsecase(t)
	h := NewAccountHandler(uc, newDiscardLogger())

	body := `{"externalUid":"fb-uid-123","name":"Dana"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Register(c)

	// Validation fails before the usecase is touched.
	require.Error(t, err)
	var httpErr *echo.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestAccountHandler_Register_Conflict(t *testing.T) {
	e := newTestEcho()
	uc := mockUsecase.NewMockAccountUsecase(t)
	h := NewAccountHandler(uc, newDiscardLogger())

	body := `{"externalUid":"fb-uid-123","email":"dana@example.com","name":"Dana"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	uc.EXPECT().
		Register(req.Context(), mock.AnythingOfType("*usecase.RegisterInput")).
		Return(nil, errors.Wrap(domainerrors.ErrAccountAlreadyExists, "external uid already registered"))

	err := h.Register(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountAlreadyExists))
}

func TestAccountHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	uc := mockUsecase.NewMockAccountUsecase(t)
	h := NewAccountHandler(uc, newDiscardLogger())

	body := `{"externalUid":"fb-uid-123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	uc.EXPECT().
		FindByExternalUID(req.Context(), "fb-uid-123").
		Return(testUser(), nil)

	err := h.Login(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"dana@example.com"`)
}

func TestAccountHandler_GetUser_Success(t *testing.T) {
	e := newTestEcho()
	uc := mockUsecase.NewMockAccountUsecase(t)
	h := NewAccountHandler(uc, newDiscardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/users/fb-uid-123", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("externalUid")
	c.SetParamValues("fb-uid-123")

	uc.EXPECT().
		FindByExternalUID(req.Context(), "fb-uid-123").
		Return(testUser(), nil)

	err := h.GetUser(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccountHandler_FindOrCreate_Success(t *testing.T) {
	e := newTestEcho()
	uc := mockUsecase.NewMockAccountUsecase(t)
	h := NewAccountHandler(uc, newDiscardLogger())

	body := `{"externalUid":"fb-uid-123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	uc.EXPECT().
		FindOrCreate(req.Context(), mock.AnythingOfType("*usecase.FindOrCreateInput")).
		Return(&usecase.FindOrCreateOutput{User: testUser(), Created: true}, nil)

	err := h.FindOrCreate(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccountHandler_UpdateProfile_ForeignAccount(t *testing.T) {
	e := newTestEcho()
	uc := mockUsecase.NewMockAccountUsecase(t)
	h := NewAccountHandler(uc, newDiscardLogger())

	body := `{"name":"Intruder"}`
	req := httptest.NewRequest(http.MethodPut, "/api/users/fb-uid-other", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("externalUid")
	c.SetParamValues("fb-uid-other")
	c.Set(string(deliverycontext.KeyExternalUID), "fb-uid-123")

	err := h.UpdateProfile(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAccountHandler_UpdateProfile_Success(t *testing.T) {
	e := newTestEcho()
	uc := mockUsecase.NewMockAccountUsecase(t)
	h := NewAccountHandler(uc, newDiscardLogger())

	body := `{"name":"Dana Updated"}`
	req := httptest.NewRequest(http.MethodPut, "/api/users/fb-uid-123", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("externalUid")
	c.SetParamValues("fb-uid-123")
	c.Set(string(deliverycontext.KeyExternalUID), "fb-uid-123")

	updated := testUser()
	updated.Name = "Dana Updated"
	uc.EXPECT().
		UpdateProfile(req.Context(), "fb-uid-123", mock.AnythingOfType("*usecase.UpdateProfileInput")).
		Return(updated, nil)

	err := h.UpdateProfile(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dana Updated")
}

func TestAccountHandler_DeleteAccount_Success(t *testing.T) {
	e := newTestEcho()
	uc := mockUsecase.NewMockAccountUsecase(t)
	h := NewAccountHandler(uc, newDiscardLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/users/fb-uid-123", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("externalUid")
	c.SetParamValues("fb-uid-123")
	c.Set(string(deliverycontext.KeyExternalUID), "fb-uid-123")

	uc.EXPECT().
		DeleteAccount(req.Context(), "fb-uid-123").
		Return(nil)

	err := h.DeleteAccount(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := HealthCheck(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
