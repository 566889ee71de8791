package storage

import (
	"context"

	"github.com/phambaophuc/image-analyzer/pkg/utils"
)

func (s *StorageService) Load(ctx context.Context, id string) (*Preview, error) {
	if !utils.IsPreviewID(id) {
		return nil, ErrPreviewNotFound
	}
	return s.store.Get(ctx, id)
}
