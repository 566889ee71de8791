package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newMemoryService(t *testing.T, ttl time.Duration) (*StorageService, *MemoryStore) {
	t.Helper()

	store := NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	return NewStorageServiceWithStore(store, ttl, zap.NewNop()), store
}

func newRedisService(t *testing.T, ttl time.Duration) (*StorageService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = store.Close() })
	return NewStorageServiceWithStore(store, ttl, zap.NewNop()), mr
}

func TestHoldLoadRelease(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()
	svc, store := newMemoryService(t, time.Minute)

	id, err := svc.Hold(ctx, "cat.png", "image/png", []byte{1, 2, 3})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(id).NotTo(BeEmpty())
	g.Expect(store.Len()).To(Equal(1))

	preview, err := svc.Load(ctx, id)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(preview.Filename).To(Equal("cat.png"))
	g.Expect(preview.ContentType).To(Equal("image/png"))
	g.Expect(preview.Data).To(Equal([]byte{1, 2, 3}))

	svc.Release(ctx, id)
	g.Expect(store.Len()).To(BeZero())

	_, err = svc.Load(ctx, id)
	g.Expect(err).To(MatchError(ErrPreviewNotFound))
}

func TestPreviewExpires(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()
	svc, store := newMemoryService(t, 50*time.Millisecond)

	id, err := svc.Hold(ctx, "a.png", "image/png", []byte{1})
	g.Expect(err).NotTo(HaveOccurred())

	_, err = svc.Load(ctx, id)
	g.Expect(err).NotTo(HaveOccurred())

	g.Eventually(func() error {
		_, err := svc.Load(ctx, id)
		return err
	}).WithTimeout(2 * time.Second).WithPolling(10 * time.Millisecond).Should(MatchError(ErrPreviewNotFound))
	g.Expect(store.Len()).To(BeZero())
}

func TestLoadDoesNotExtendLifetime(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()
	svc, _ := newMemoryService(t, 200*time.Millisecond)

	id, err := svc.Hold(ctx, "a.png", "image/png", []byte{1})
	g.Expect(err).NotTo(HaveOccurred())

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, err := svc.Load(ctx, id); err != nil {
			g.Expect(err).To(MatchError(ErrPreviewNotFound))
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("preview outlived its TTL while being read")
}

func TestLoadRejectsMalformedIDs(t *testing.T) {
	g := NewWithT(t)
	svc, _ := newMemoryService(t, time.Minute)

	_, err := svc.Load(context.Background(), "../secret")
	g.Expect(err).To(MatchError(ErrPreviewNotFound))

	// Releasing garbage is a no-op.
	svc.Release(context.Background(), "")
}

func TestHealthCheck(t *testing.T) {
	g := NewWithT(t)
	svc, _ := newMemoryService(t, time.Minute)

	g.Expect(svc.HealthCheck(context.Background())).To(HaveKeyWithValue("preview_store", "healthy"))
	g.Expect(svc.Backend()).To(Equal("memory"))
}

// === REDIS STORE ===

func TestRedisHoldLoadRelease(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()
	svc, mr := newRedisService(t, time.Minute)

	data := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}
	id, err := svc.Hold(ctx, "cat.png", "image/png", data)
	g.Expect(err).NotTo(HaveOccurred())

	key := previewKeyPrefix + id
	g.Expect(mr.Exists(key)).To(BeTrue())
	g.Expect(mr.HGet(key, "filename")).To(Equal("cat.png"))
	g.Expect(mr.HGet(key, "content_type")).To(Equal("image/png"))
	g.Expect(mr.TTL(key)).To(Equal(time.Minute))

	preview, err := svc.Load(ctx, id)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(preview.Filename).To(Equal("cat.png"))
	g.Expect(preview.ContentType).To(Equal("image/png"))
	g.Expect(preview.Data).To(Equal(data))

	svc.Release(ctx, id)
	g.Expect(mr.Exists(key)).To(BeFalse())

	_, err = svc.Load(ctx, id)
	g.Expect(err).To(MatchError(ErrPreviewNotFound))
}

func TestRedisPreviewExpires(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()
	svc, mr := newRedisService(t, time.Minute)

	id, err := svc.Hold(ctx, "a.png", "image/png", []byte{1})
	g.Expect(err).NotTo(HaveOccurred())

	mr.FastForward(59 * time.Second)
	_, err = svc.Load(ctx, id)
	g.Expect(err).NotTo(HaveOccurred())

	mr.FastForward(time.Second)
	_, err = svc.Load(ctx, id)
	g.Expect(err).To(MatchError(ErrPreviewNotFound))
}

func TestRedisWithoutTTLKeepsPreview(t *testing.T) {
	g := NewWithT(t)
	svc, mr := newRedisService(t, 0)

	id, err := svc.Hold(context.Background(), "a.png", "image/png", []byte{1})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(mr.TTL(previewKeyPrefix + id)).To(BeZero())
}

func TestRedisHealthCheck(t *testing.T) {
	g := NewWithT(t)
	svc, mr := newRedisService(t, time.Minute)

	g.Expect(svc.Backend()).To(Equal("redis"))
	g.Expect(svc.HealthCheck(context.Background())).To(HaveKeyWithValue("preview_store", "healthy"))

	mr.Close()
	g.Expect(svc.HealthCheck(context.Background())["preview_store"]).To(HavePrefix("unhealthy"))
}
