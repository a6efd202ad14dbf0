package util

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
)

const thumbnailWidth = 320

// GetSafeContentType 基于文件头嗅探真实类型，不信任客户端声明
func GetSafeContentType(file multipart.File) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}

// IsImageContentType 判断是否为图片类型
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// MakeThumbnail 等比缩放生成 JPEG 缩略图
func MakeThumbnail(file multipart.File) (*bytes.Buffer, int64, error) {
	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return nil, 0, fmt.Errorf("图片解码失败: %w", err)
	}
	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)

	buf := &bytes.Buffer{}
	if err = imaging.Encode(buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, 0, fmt.Errorf("缩略图编码失败: %w", err)
	}
	return buf, int64(buf.Len()), nil
}
