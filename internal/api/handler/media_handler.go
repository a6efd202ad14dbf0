package handler

import (
	"FarmLink/internal/pkg/consts"
	"FarmLink/internal/pkg/minio"
	"FarmLink/internal/pkg/response"
	"FarmLink/internal/pkg/util"
	"FarmLink/internal/service"
	log "log/slog"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MediaHandler struct{}

func NewMediaHandler() *MediaHandler {
	return &MediaHandler{}
}

// Upload 商品图片上传，原图与缩略图一并写入对象存储
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil || !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	ext := path.Ext(file.Filename)
	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + ext

	fileKey, err := minio.UploadFile(c.Request.Context(), objectName, reader, file.Size, contentType)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "MinIO upload failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	// 缩略图生成失败不阻塞上传，列表页回落展示原图
	thumbKey := ""
	if _, err = reader.Seek(0, 0); err == nil {
		if thumbBuf, thumbSize, thumbErr := util.MakeThumbnail(reader); thumbErr == nil {
			name := strings.TrimSuffix(objectName, ext) + "_thumb.jpg"
			thumbKey, err = minio.UploadFile(c.Request.Context(), name, thumbBuf, thumbSize, "image/jpeg")
			if err != nil {
				log.WarnContext(c.Request.Context(), "thumbnail upload failed", "err", err)
				thumbKey = ""
			}
		} else {
			log.WarnContext(c.Request.Context(), "thumbnail encode failed", "err", thumbErr)
		}
	}

	response.Success(c, gin.H{
		"file_key":      fileKey,
		"url":           minio.GetPublicURL(fileKey),
		"thumbnail_url": minio.GetPublicURL(thumbKey),
	})
}
