package middleware

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"hms-http-service/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addImagePart 向多部分表单写入一个带Content-Type的图片字段
func addImagePart(t *testing.T, w *multipart.Writer, filename, contentType string, data []byte) {
	t.Helper()

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, ImageFormField, filename))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
}

// parseImages 通过一个临时gin上下文执行解析
func parseImages(t *testing.T, body *bytes.Buffer, contentType string) ([]models.RequestImage, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var (
		images   []models.RequestImage
		parseErr error
	)
	r := gin.New()
	r.POST("/upload", func(c *gin.Context) {
		images, parseErr = ParseRequestImages(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	return images, parseErr
}

func TestParseRequestImages(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	addImagePart(t, writer, "leak.jpg", "image/jpeg", []byte("fake-jpeg-bytes"))
	addImagePart(t, writer, "leak2.png", "image/png", []byte("fake-png-bytes"))
	require.NoError(t, writer.Close())

	images, err := parseImages(t, body, writer.FormDataContentType())
	require.NoError(t, err)
	require.Len(t, images, 2)

	assert.Equal(t, "leak.jpg", images[0].Filename)
	assert.Equal(t, "image/jpeg", images[0].ContentType)
	assert.Equal(t, int64(len("fake-jpeg-bytes")), images[0].Size)
	assert.NotEmpty(t, images[0].UUID)

	// 图片内容以base64存储
	decoded, err := base64.StdEncoding.DecodeString(images[0].Data)
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-jpeg-bytes"), decoded)
}

// 非multipart请求视为没有图片
func TestParseRequestImagesNonMultipart(t *testing.T) {
	images, err := parseImages(t, bytes.NewBufferString("title=x"), "application/x-www-form-urlencoded")
	assert.NoError(t, err)
	assert.Nil(t, images)
}

func TestParseRequestImagesTooMany(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for i := 0; i < MaxImageCount+1; i++ {
		addImagePart(t, writer, fmt.Sprintf("img%d.jpg", i), "image/jpeg", []byte("data"))
	}
	require.NoError(t, writer.Close())

	_, err := parseImages(t, body, writer.FormDataContentType())
	assert.Error(t, err)
}

func TestParseRequestImagesBadContentType(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	addImagePart(t, writer, "evil.gif", "image/gif", []byte("gif-bytes"))
	require.NoError(t, writer.Close())

	_, err := parseImages(t, body, writer.FormDataContentType())
	assert.Error(t, err)
}

func TestParseRequestImagesOversize(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	addImagePart(t, writer, "huge.jpg", "image/jpeg", make([]byte, MaxImageSize+1))
	require.NoError(t, writer.Close())

	_, err := parseImages(t, body, writer.FormDataContentType())
	assert.Error(t, err)
}
