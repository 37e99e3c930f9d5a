// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"vhsghost/signal-api/cloudflare"
	"vhsghost/signal-api/config"
	"vhsghost/signal-api/db"
	"vhsghost/signal-api/middleware"
	"vhsghost/signal-api/web"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/jellydator/ttlcache/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	Router *gin.Engine

	// KV and R2 are both optional. A nil KV skips rate limiting and
	// persistence; a nil R2 degrades chunk listing and video serving.
	KV *db.KVStore
	R2 *cloudflare.R2Client

	chunkCache *ttlcache.Cache
}

func NewRouter() (*API, error) {
	a := &API{}

	makeLogger()

	if viper.GetString("redis.addr") != "" {
		kv, err := db.New()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis store, %w", err)
		}
		a.KV = kv
	}

	if config.R2Configured() {
		r2, err := cloudflare.NewR2()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize R2 client, %w", err)
		}
		a.R2 = r2
	}

	a.Router = gin.New()
	a.Router.Use(
		middleware.NewCORSMiddleware(),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				return fields
			},
		}),
	)

	a.registerRoutes()

	return a, nil
}

// registerRoutes wires every handler onto the engine. Split out from
// NewRouter so tests can run the full routing table against an API
// with no stores attached.
func (a *API) registerRoutes() {
	router := a.Router
	router.SetHTMLTemplate(web.Templates())

	a.chunkCache = ttlcache.NewCache()
	a.chunkCache.SetTTL(5 * time.Minute)
	a.chunkCache.SkipTTLExtensionOnHit(true)

	diagLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: 1,
		Burst:             5,
	})

	main := router.Group("/api")
	{
		// GET /api/emails		-> Secret-gated listing of captured submissions
		main.GET("/emails", diagLimiter.Handler(), a.EmailList)

		// POST /api/email		-> Captures an email submission
		main.POST("/email", a.EmailSubmit)

		// GET /api/chunks		-> Shuffled list of playable video chunks
		main.GET("/chunks", a.ChunkList)

		// GET /api/video/:name	-> Streams a chunk from the bucket
		main.GET("/video/:name", a.VideoServe)
	}

	// GET /			-> Access denied page for the bare origin
	router.GET("/", a.Root)

	// GET /:username		-> Terminal page for a looked-up user
	router.GET("/:username", a.ProfilePage)

	router.NoRoute(a.NotFound)
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
