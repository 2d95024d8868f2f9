package middleware

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"

	"hms-http-service/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// 图片上传约束
const (
	// MaxImageCount 单个请求最多携带的图片数
	MaxImageCount = 5
	// MaxImageSize 单张图片的大小上限（1MB）
	MaxImageSize = 1 << 20
	// ImageFormField 多部分表单中的图片字段名
	ImageFormField = "images"
)

// 允许的图片类型
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// ParseRequestImages 从多部分表单中解析并校验上传的图片
// 超出数量、超出大小或类型不允许的文件会使整个请求被拒绝
func ParseRequestImages(c *gin.Context) ([]models.RequestImage, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// 非multipart请求视为没有图片
		return nil, nil
	}

	files := form.File[ImageFormField]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > MaxImageCount {
		return nil, fmt.Errorf("最多上传%d张图片", MaxImageCount)
	}

	images := make([]models.RequestImage, 0, len(files))
	for _, file := range files {
		image, err := buildRequestImage(file)
		if err != nil {
			return nil, err
		}
		images = append(images, *image)
	}
	return images, nil
}

// buildRequestImage 校验单个文件并编码为存库记录
func buildRequestImage(file *multipart.FileHeader) (*models.RequestImage, error) {
	if file.Size > MaxImageSize {
		return nil, fmt.Errorf("图片 %s 超过1MB大小限制", file.Filename)
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return nil, fmt.Errorf("图片 %s 类型不允许，仅支持jpeg和png", file.Filename)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("读取图片 %s 失败: %v", file.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("读取图片 %s 失败: %v", file.Filename, err)
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("图片 %s 超过1MB大小限制", file.Filename)
	}

	return &models.RequestImage{
		UUID:        uuid.New().String(),
		Data:        base64.StdEncoding.EncodeToString(data),
		ContentType: contentType,
		Filename:    file.Filename,
		Size:        int64(len(data)),
	}, nil
}
