package storage

import "context"

// HealthCheck reports the preview store status keyed by service name.
func (s *StorageService) HealthCheck(ctx context.Context) map[string]string {
	status := make(map[string]string)

	if err := s.store.Ping(ctx); err != nil {
		status["preview_store"] = "unhealthy: " + err.Error()
	} else {
		status["preview_store"] = "healthy"
	}

	return status
}

func (s *StorageService) Backend() string {
	return s.store.Name()
}
