package minio

import (
	"FarmLink/internal/api/config"
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
)

// UploadFile 上传对象并返回存储键
func UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := Client.PutObject(ctx, Bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return objectName, nil
}

// GetPublicURL 根据存储键拼出可公开访问的 URL
func GetPublicURL(objectKey string) string {
	if objectKey == "" {
		return ""
	}
	if strings.HasPrefix(objectKey, "http://") || strings.HasPrefix(objectKey, "https://") {
		return objectKey
	}
	base := strings.TrimSuffix(config.Cfg.MinIO.PublicBaseURL, "/")
	return base + "/" + Bucket + "/" + objectKey
}
