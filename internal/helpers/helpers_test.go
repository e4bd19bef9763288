package helpers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"estatery-api-io/api/internal/apperr"
	"estatery-api-io/api/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type upload struct {
	name        string
	contentType string
	size        int
}

func multipartContext(t *testing.T, field string, files ...upload) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, f.name))
		header.Set("Content-Type", f.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte{0xff}, f.size))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/upload/images", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	return c
}

func TestOpenImages_KeepsFormOrder(t *testing.T) {
	c := multipartContext(t, "images",
		upload{"front.jpg", "image/jpeg", 64},
		upload{"kitchen.png", "image/png", 32},
		upload{"garden.webp", "image/webp", 16},
	)

	opened, err := OpenImages(c, "images", 1, 6)
	require.NoError(t, err)
	defer opened.Close()

	require.Len(t, opened.Files, 3)
	headers := c.Request.MultipartForm.File["images"]
	assert.Equal(t, "front.jpg", headers[0].Filename)
	assert.Equal(t, "garden.webp", headers[2].Filename)
}

func TestOpenImages_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		files []upload
		max   int
	}{
		{"none", nil, 6},
		{"too many", []upload{{"a.jpg", "image/jpeg", 1}, {"b.jpg", "image/jpeg", 1}}, 1},
		{"not an image", []upload{{"notes.pdf", "application/pdf", 10}}, 6},
		{"too large", []upload{{"huge.jpg", "image/jpeg", MAX_IMAGE_SIZE + 1}}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := multipartContext(t, "images", tt.files...)
			_, err := OpenImages(c, "images", 1, tt.max)
			assert.True(t, apperr.Is(err, apperr.KindValidation), err)
		})
	}
}

func TestMyId(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	_, ok := MyId(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	id := primitive.NewObjectID()
	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	auth.SetCurrentUser(c, id)

	param, got, ok := ParamAndMyId(c, "id")
	assert.True(t, ok)
	assert.Equal(t, "abc", param)
	assert.Equal(t, id, got)
}
