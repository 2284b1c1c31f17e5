package cache_test

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rowalls/uh-internal-project/internal/cache"
	"github.com/rowalls/uh-internal-project/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Redis cache", func() {
	Context("when the server is unreachable", func() {
		var c *cache.Redis

		BeforeEach(func() {
			client := redis.NewClient(&redis.Options{
				Addr:        "127.0.0.1:1",
				DialTimeout: 50 * time.Millisecond,
				MaxRetries:  -1,
			})
			c = cache.NewRedisFromClient(client, logger.Discard())
		})

		AfterEach(func() {
			Expect(c.Close()).To(Succeed())
		})

		It("surfaces read failures instead of reporting a miss", func() {
			_, ok, err := c.Get(context.Background(), "has_access:jdoe:computers")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("redis get"))
			Expect(ok).To(BeFalse())
		})

		It("surfaces write failures", func() {
			err := c.Set(context.Background(), "k", []byte("v"), time.Minute)
			Expect(err).To(HaveOccurred())
		})

		It("fails ping", func() {
			Expect(c.Ping(context.Background())).NotTo(Succeed())
		})
	})
})
