package storage

import (
	"context"
	"fmt"

	"github.com/phambaophuc/image-analyzer/pkg/utils"
	"go.uber.org/zap"
)

// Hold stores an uploaded image and returns the id the form refers to it by.
func (s *StorageService) Hold(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	id := utils.GeneratePreviewID()

	err := s.store.Put(ctx, id, &Preview{
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
	}, s.ttl)
	if err != nil {
		return "", fmt.Errorf("failed to hold preview: %w", err)
	}

	s.logger.Debug("Preview held", zap.String("preview_id", id), zap.Int("bytes", len(data)))
	return id, nil
}

// Release drops a preview. Unknown or malformed ids are ignored.
func (s *StorageService) Release(ctx context.Context, id string) {
	if !utils.IsPreviewID(id) {
		return
	}

	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Warn("Failed to release preview", zap.String("preview_id", id), zap.Error(err))
		return
	}

	s.logger.Debug("Preview released", zap.String("preview_id", id))
}
