package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	deliverycontext "taskdeck/internal/delivery/context"
	"taskdeck/internal/domain/entity"
	domainerrors "taskdeck/internal/domain/errors"
	mockUsecase "taskdeck/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testTask(ownerID uuid.UUID) *entity.Task {
	return &entity.Task{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Text:      "buy milk",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, externalUID string) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(string(deliverycontext.KeyExternalUID), externalUID)

	return c
}

func TestTaskHandler_List_Success(t *testing.T) {
	e := newTestEcho()
	uc := mockUsecase.NewMockTaskUsecase(t)
	h := NewTaskHandler(uc, newDiscardLogger())

	ownerID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "fb-uid-123")

	uc.EXPECT().
		List(req.Context(), "fb-uid-123").
		Return([]*entity.Task{testTask(ownerID), testTask(ownerID)}, nil)

	err := h.List(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "buy milk")
}

func TestTaskHandler_List_EmptyIsJSONArray(t *testing.T) {
	e := newTestEcho()
	uc := mockUsecase.NewMockTaskUsecase(t)
	h := NewTaskHandler(uc, newDiscardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "fb-uid-123")

	uc.EXPECT().
		List(req.Context(), "fb-uid-123").
		Return(nil, nil)

	err := h.List(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	// Clients iterate the list; it must never be null.
	assert.NotContains(t, rec.Body.String(), `"data":null`)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestTaskHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	uc := mockUsecase.NewMockTaskUsecase(t)
	h := NewTaskHandler(uc, newDiscardLogger())

	body := `{"text":"buy milk"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "fb-uid-123")

	uc.EXPECT().
		Create(req.Context(), "fb-uid-123", mock.AnythingOfType("*usecase.CreateTaskInput")).
		Return(testTask(uuid.New()), nil)

	err := h.Create(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestTaskHandler_Create_MissingText(t *testing.T) {
	e := newTestEcho()
	uc := mockUsecase.NewMockTaskUsecase(t)
	h := NewTaskHandler(uc, newDiscardLogger())

	body := `{}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "fb-uid-123")

	err := h.Create(c)

	require.Error(t, err)
	var httpErr *echo.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestTaskHandler_Update_Success(t *testing.T) {
	e := newTestEcho()
	uc := mockUsecase.NewMockTaskUsecase(t)
	h := NewTaskHandler(uc, newDiscardLogger())

	taskID := uuid.New()
	body := `{"completed":true}`
	req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+taskID.String(), strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "fb-uid-123")
	c.SetParamNames("id")
	c.SetParamValues(taskID.String())

	updated := testTask(uuid.New())
	updated.ID = taskID
	updated.Completed = true
	uc.EXPECT().
		Update(req.Context(), "fb-uid-123", taskID, mock.AnythingOfType("*usecase.UpdateTaskInput")).
		Return(updated, nil)

	err := h.Update(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"completed":true`)
}

func TestTaskHandler_Update_MalformedID(t *testing.T) {
	e := newTestEcho()
	uc := mockUsecase.NewMockTaskUsecase(t)
	h := NewTaskHandler(uc, newDiscardLogger())

	req := httptest.NewRequest(http.MethodPut, "/api/tasks/not-a-uuid", strings.NewReader(`{"completed":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "fb-uid-123")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.Update(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskHandler_Update_Foreign(t *testing.T) {
	e := newTestEcho()
	uc := mockUsecase.NewMockTaskUsecase(t)
	h := NewTaskHandler(uc, newDiscardLogger())

	taskID := uuid.New()
	req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+taskID.String(), strings.NewReader(`{"completed":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "fb-uid-123")
	c.SetParamNames("id")
	c.SetParamValues(taskID.String())

	uc.EXPECT().
		Update(req.Context(), "fb-uid-123", taskID, mock.AnythingOfType("*usecase.UpdateTaskInput")).
		Return(nil, errors.Wrap(domainerrors.ErrTaskOwnershipViolation, "task belongs to another account"))

	err := h.Update(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTaskOwnershipViolation))
}

func TestTaskHandler_Delete_Success(t *testing.T) {
	e := newTestEcho()
	uc := mockUsecase.NewMockTaskUsecase(t)
	h := NewTaskHandler(uc, newDiscardLogger())

	taskID := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/tasks/"+taskID.String(), nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "fb-uid-123")
	c.SetParamNames("id")
	c.SetParamValues(taskID.String())

	uc.EXPECT().
		Delete(req.Context(), "fb-uid-123", taskID).
		Return(nil)

	err := h.Delete(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
