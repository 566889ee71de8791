package config

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func TestLoadDefaults(t *testing.T) {
	g := NewWithT(t)

	for _, key := range []string{"PORT", "APP_ENV", "UPSTREAM_URL", "UPSTREAM_TIMEOUT", "REDIS_ADDR", "MAX_IMAGE_SIZE", "PREVIEW_TTL", "WRITE_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Server.Port).To(Equal("8080"))
	g.Expect(cfg.Server.WriteTimeout).To(Equal(120 * time.Second))
	g.Expect(cfg.Upstream.URL).To(BeEmpty())
	g.Expect(cfg.Upstream.Timeout).To(BeZero())
	g.Expect(cfg.Redis.Addr).To(BeEmpty())
	g.Expect(cfg.Preview.MaxImageSize).To(Equal(int64(10 * 1024 * 1024)))
	g.Expect(cfg.Preview.TTL).To(Equal(30 * time.Minute))
	g.Expect(cfg.IsDevelopment()).To(BeFalse())
}

func TestLoadFromEnvironment(t *testing.T) {
	g := NewWithT(t)

	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "development")
	t.Setenv("UPSTREAM_URL", "https://vision.example.com/analyze_image")
	t.Setenv("UPSTREAM_TIMEOUT", "45s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("MAX_IMAGE_SIZE", "2048")
	t.Setenv("PREVIEW_TTL", "not-a-duration")

	cfg, err := Load()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Server.Port).To(Equal("9090"))
	g.Expect(cfg.IsDevelopment()).To(BeTrue())
	g.Expect(cfg.Upstream.URL).To(Equal("https://vision.example.com/analyze_image"))
	g.Expect(cfg.Upstream.Timeout).To(Equal(45 * time.Second))
	g.Expect(cfg.Redis.Addr).To(Equal("localhost:6379"))
	g.Expect(cfg.Redis.DB).To(Equal(2))
	g.Expect(cfg.Preview.MaxImageSize).To(Equal(int64(2048)))
	g.Expect(cfg.Preview.TTL).To(Equal(30 * time.Minute))
}
