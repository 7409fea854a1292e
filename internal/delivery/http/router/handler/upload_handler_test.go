package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"taskdeck/internal/domain/service"
	mockService "taskdeck/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func multipartPicture(t *testing.T, fieldName, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestUploadHandler_Upload_Success(t *testing.T) {
	e := newTestEcho()
	store := mockService.NewMockProfilePictureStore(t)
	h := NewUploadHandler(store, newDiscardLogger())

	body, contentType := multipartPicture(t, "file", "avatar.png", "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	store.EXPECT().
		Upload(req.Context(), "avatar.png", "image/png", mock.Anything).
		Return(&service.StoredPicture{
			Key: "pictures/abc.png",
			URL: "https://cdn.example.com/pictures/abc.png",
		}, nil)

	err := h.Upload(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://cdn.example.com/pictures/abc.png")
}

func TestUploadHandler_Upload_MissingFile(t *testing.T) {
	e := newTestEcho()
	store := mockService.NewMockProfilePictureStore(t)
	h := NewUploadHandler(store, newDiscardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Upload(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadHandler_Upload_UnsupportedType(t *testing.T) {
	e := newTestEcho()
	store := mockService.NewMockProfilePictureStore(t)
	h := NewUploadHandler(store, newDiscardLogger())

	body, contentType := multipartPicture(t, "file", "notes.txt", "text/plain", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Upload(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadHandler_Upload_StoreFailure(t *testing.T) {
	e := newTestEcho()
	store := mockService.NewMockProfilePictureStore(t)
	h := NewUploadHandler(store, newDiscardLogger())

	body, contentType := multipartPicture(t, "file", "avatar.png", "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	store.EXPECT().
		Upload(req.Context(), "avatar.png", "image/png", mock.Anything).
		Return(nil, errors.New("bucket unavailable"))

	err := h.Upload(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestUploadHandler_Upload_StorageUnconfigured(t *testing.T) {
	e := newTestEcho()
	h := NewUploadHandler(nil, newDiscardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Upload(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestUploadHandler_Delete_Success(t *testing.T) {
	e := newTestEcho()
	store := mockService.NewMockProfilePictureStore(t)
	h := NewUploadHandler(store, newDiscardLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/upload/pictures/abc.png", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("*")
	c.SetParamValues("pictures/abc.png")

	store.EXPECT().
		Delete(req.Context(), "pictures/abc.png").
		Return(nil)

	err := h.Delete(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
