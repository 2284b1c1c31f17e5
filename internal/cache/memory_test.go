package cache_test

import (
	"context"
	"sync"
	"time"

	"github.com/rowalls/uh-internal-project/internal/cache"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Memory cache", func() {
	var (
		ctx context.Context
		now time.Time
		c   *cache.Memory
	)

	BeforeEach(func() {
		ctx = context.Background()
		now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		c = cache.NewMemory(cache.WithClock(func() time.Time { return now }))
	})

	It("reports a miss for unknown keys", func() {
		val, ok, err := c.Get(ctx, "missing")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
		Expect(val).To(BeNil())
	})

	It("returns stored values until the ttl elapses", func() {
		Expect(c.Set(ctx, "k", []byte("v"), time.Hour)).To(Succeed())

		now = now.Add(59 * time.Minute)
		val, ok, err := c.Get(ctx, "k")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(string(val)).To(Equal("v"))

		now = now.Add(time.Minute)
		_, ok, err = c.Get(ctx, "k")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("keeps entries without a ttl", func() {
		Expect(c.Set(ctx, "forever", []byte("1"), 0)).To(Succeed())
		now = now.Add(24 * 365 * time.Hour)

		_, ok, _ := c.Get(ctx, "forever")
		Expect(ok).To(BeTrue())
	})

	It("does not share the caller's buffer", func() {
		buf := []byte("abc")
		Expect(c.Set(ctx, "k", buf, time.Minute)).To(Succeed())
		buf[0] = 'z'

		val, _, _ := c.Get(ctx, "k")
		Expect(string(val)).To(Equal("abc"))
	})

	It("lets the last concurrent write win", func() {
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = c.Set(ctx, "shared", []byte("x"), time.Minute)
				_, _, _ = c.Get(ctx, "shared")
			}()
		}
		wg.Wait()

		val, ok, _ := c.Get(ctx, "shared")
		Expect(ok).To(BeTrue())
		Expect(string(val)).To(Equal("x"))
	})

	It("empties on close", func() {
		Expect(c.Set(ctx, "k", []byte("v"), time.Minute)).To(Succeed())
		Expect(c.Close()).To(Succeed())

		_, ok, _ := c.Get(ctx, "k")
		Expect(ok).To(BeFalse())
	})
})
