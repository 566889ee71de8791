package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/phambaophuc/image-analyzer/internal/models"
	"github.com/phambaophuc/image-analyzer/internal/services/upstream"
	"github.com/phambaophuc/image-analyzer/pkg/utils"
	"go.uber.org/zap"
)

var (
	ErrMissingContent = errors.New("image and query are required")
	ErrMissingAPIKey  = errors.New("x-api-key is required")
	ErrImageTooLarge  = errors.New("image exceeds maximum allowed size")
)

// Analyzer forwards a single image question to the upstream service.
type Analyzer interface {
	Configured() bool
	Analyze(ctx context.Context, image []byte, query, apiKey string) ([]byte, error)
}

// Service is the stateless proxy transformation shared by the JSON API and
// the form. Every call owns its buffers.
type Service struct {
	upstream     Analyzer
	maxImageSize int64
	logger       *zap.Logger
}

func NewService(upstream Analyzer, maxImageSize int64, logger *zap.Logger) *Service {
	return &Service{
		upstream:     upstream,
		maxImageSize: maxImageSize,
		logger:       logger,
	}
}

// Validate checks the request fields in the order callers see them.
func (s *Service) Validate(req *models.AnalysisRequest) error {
	if !req.HasContent() {
		return ErrMissingContent
	}
	if req.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func (s *Service) UpstreamConfigured() bool {
	return s.upstream.Configured()
}

// Analyze validates, decodes and forwards req. The returned result carries
// the upstream body verbatim.
func (s *Service) Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResult, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	if !s.upstream.Configured() {
		return nil, upstream.ErrNotConfigured
	}

	image, err := utils.DecodeDataURL(req.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if s.maxImageSize > 0 && int64(len(image)) > s.maxImageSize {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrImageTooLarge, len(image), s.maxImageSize)
	}

	s.logger.Debug("Forwarding analysis request",
		zap.Int("image_bytes", len(image)),
		zap.Int("query_length", len(req.Query)),
	)

	body, err := s.upstream.Analyze(ctx, image, req.Query, req.APIKey)
	if err != nil {
		return nil, err
	}

	result, err := models.NewAnalysisResult(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse upstream response: %w", err)
	}

	return result, nil
}
