package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fursa_backend/internal/config"
	"fursa_backend/internal/imageprocessor"
	"fursa_backend/internal/logger"
	"fursa_backend/internal/services/dto"
	"fursa_backend/internal/storage"
	"fursa_backend/pkg/apperrors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const uploadConcurrency = 4

type UploadService interface {
	// UploadFiles проверяет все файлы и загружает их параллельно
	UploadFiles(ctx context.Context, ownerID string, files []*dto.FileInput) ([]*dto.UploadedFile, error)

	// UploadFile - один файл (портфолио)
	UploadFile(ctx context.Context, ownerID string, file *dto.FileInput) (*dto.UploadedFile, error)
}

// UploadRecorder - счетчик загруженных файлов (metrics.Manager)
type UploadRecorder interface {
	RecordUpload(kind string)
}

type UploadServiceImpl struct {
	storage   storage.Storage
	processor *imageprocessor.Processor
	cfg       config.UploadConfig
	recorder  UploadRecorder
	now       func() time.Time
}

func NewUploadService(st storage.Storage, cfg config.UploadConfig) *UploadServiceImpl {
	return &UploadServiceImpl{
		storage:   st,
		processor: imageprocessor.NewProcessor(cfg.ImageQuality, cfg.MaxImageDimension),
		cfg:       cfg,
		now:       time.Now,
	}
}

// WithRecorder подключает учет загрузок в метриках
func (s *UploadServiceImpl) WithRecorder(r UploadRecorder) *UploadServiceImpl {
	s.recorder = r
	return s
}

func (s *UploadServiceImpl) UploadFiles(ctx context.Context, ownerID string, files []*dto.FileInput) ([]*dto.UploadedFile, error) {
	if len(files) == 0 {
		return nil, apperrors.ErrNoFiles
	}
	if len(files) > s.cfg.MaxFiles {
		return nil, apperrors.ErrTooManyFiles.WithDetails(map[string]int{"maxFiles": s.cfg.MaxFiles})
	}
	for _, f := range files {
		if err := s.validate(f); err != nil {
			return nil, err
		}
	}

	results := make([]*dto.UploadedFile, len(files))

	var (
		mu    sync.Mutex
		saved []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)

	for i, f := range files {
		g.Go(func() error {
			res, err := s.store(gctx, ownerID, f)
			if err != nil {
				return err
			}
			mu.Lock()
			saved = append(saved, res.PublicID)
			mu.Unlock()
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.rollback(ctx, saved)
		return nil, err
	}

	logger.CtxInfo(ctx, "Files uploaded", "owner_id", ownerID, "count", len(results))
	return results, nil
}

func (s *UploadServiceImpl) UploadFile(ctx context.Context, ownerID string, file *dto.FileInput) (*dto.UploadedFile, error) {
	if err := s.validate(file); err != nil {
		return nil, err
	}
	return s.store(ctx, ownerID, file)
}

func (s *UploadServiceImpl) validate(f *dto.FileInput) error {
	if f.Size > s.cfg.MaxSize {
		return apperrors.ErrFileTooLarge.WithDetails(map[string]interface{}{
			"file":    f.Filename,
			"maxSize": s.cfg.MaxSize,
		})
	}
	if !s.cfg.IsAllowedType(f.ContentType) {
		return apperrors.ErrInvalidFileType.WithDetails(map[string]string{
			"file": f.Filename,
			"type": f.ContentType,
		})
	}
	return nil
}

// store читает файл, ужимает изображение и сохраняет в хранилище
func (s *UploadServiceImpl) store(ctx context.Context, ownerID string, f *dto.FileInput) (*dto.UploadedFile, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("failed to open %s: %w", f.Filename, err))
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, s.cfg.MaxSize+1))
	if err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("failed to read %s: %w", f.Filename, err))
	}
	if int64(len(data)) > s.cfg.MaxSize {
		return nil, apperrors.ErrFileTooLarge.WithDetails(map[string]interface{}{"file": f.Filename, "maxSize": s.cfg.MaxSize})
	}

	out := &dto.UploadedFile{Type: mediaType(f.ContentType)}
	contentType := f.ContentType
	ext := strings.ToLower(filepath.Ext(f.Filename))

	if out.Type == "image" {
		img, err := s.processor.Fit(bytes.NewReader(data))
		if err != nil {
			// формат, который мы не декодируем (svg, heic): сохраняем как есть
			logger.CtxWarn(ctx, "Image kept unprocessed", "file", f.Filename, "error", err)
		} else {
			data, contentType, ext = img.Data, img.ContentType, img.Ext
			out.Width, out.Height = img.Width, img.Height
		}
	}

	key := s.objectKey(ownerID, out.Type, ext)
	if err := s.storage.Save(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return nil, apperrors.ErrStorageUnavailable.WithError(err)
	}

	out.URL = s.storage.GetURL(key)
	out.PublicID = key
	out.Size = int64(len(data))
	if s.recorder != nil {
		s.recorder.RecordUpload(out.Type)
	}
	return out, nil
}

func (s *UploadServiceImpl) rollback(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.storage.Delete(context.WithoutCancel(ctx), key); err != nil {
			logger.CtxWarn(ctx, "Failed to remove uploaded file after error", "key", key, "error", err)
		}
	}
}

// objectKey: fursa/<тип>/<владелец>/<год>/<месяц>/<uuid><ext>
func (s *UploadServiceImpl) objectKey(ownerID, kind, ext string) string {
	now := s.now().UTC()
	return path.Join(
		"fursa",
		kind+"s",
		ownerID,
		fmt.Sprintf("%04d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
		uuid.NewString()+ext,
	)
}

func mediaType(contentType string) string {
	if strings.HasPrefix(strings.ToLower(contentType), "video/") {
		return "video"
	}
	return "image"
}
