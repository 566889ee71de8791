package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/phambaophuc/image-analyzer/internal/services/analysis"
	"github.com/phambaophuc/image-analyzer/internal/services/upstream"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "missing content", err: analysis.ErrMissingContent, status: http.StatusBadRequest, message: "Image and query are required"},
		{name: "missing key", err: analysis.ErrMissingAPIKey, status: http.StatusBadRequest, message: "x-api-key is required"},
		{name: "not configured", err: upstream.ErrNotConfigured, status: http.StatusInternalServerError, message: "Upstream URL not configured"},
		{name: "upstream status", err: &upstream.StatusError{StatusCode: 503}, status: http.StatusInternalServerError, message: "Failed to analyze image"},
		{name: "wrapped decode", err: fmt.Errorf("failed to decode image: %w", errors.New("bad base64")), status: http.StatusInternalServerError, message: "Failed to analyze image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)

			status, message := classifyError(tt.err)
			g.Expect(status).To(Equal(tt.status))
			g.Expect(message).To(Equal(tt.message))
		})
	}
}

func TestCalculateOverallHealth(t *testing.T) {
	g := NewWithT(t)

	g.Expect(calculateOverallHealth(map[string]string{"a": "healthy", "b": "healthy"})).To(Equal("healthy"))
	g.Expect(calculateOverallHealth(map[string]string{"a": "healthy", "b": "not configured"})).To(Equal("degraded"))
	g.Expect(calculateOverallHealth(map[string]string{"a": "unhealthy: dial tcp", "b": "not configured"})).To(Equal("unhealthy"))
}
