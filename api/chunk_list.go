package api

import (
	"context"
	"net/http"

	"vhsghost/signal-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	chunkListLimit = 1000
	chunkCacheKey  = "chunks"
)

// ChunkList returns the playable chunk names in a fresh random order.
// The bucket listing itself is cached for five minutes; the shuffle
// runs per request so no two responses share an order by construction.
func (a *API) ChunkList(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")

	if a.R2 == nil {
		c.Header("Cache-Control", "max-age=300")
		c.JSON(http.StatusOK, gin.H{"chunks": []string{}})
		return
	}

	chunks, err := a.listChunks(c.Request.Context())
	if err != nil {
		// A broken bucket shouldn't break the page, the client has
		// its own fallback list.
		zap.L().Error("Failed to list video chunks", zap.Error(err))

		c.JSON(http.StatusOK, gin.H{"chunks": []string{}})
		return
	}

	c.Header("Cache-Control", "max-age=300")
	c.JSON(http.StatusOK, gin.H{"chunks": service.ShuffleChunks(chunks)})
}

func (a *API) listChunks(ctx context.Context) ([]string, error) {
	if cached, err := a.chunkCache.Get(chunkCacheKey); err == nil {
		return cached.([]string), nil
	}

	keys, err := a.R2.ListKeys(ctx, chunkListLimit)
	if err != nil {
		return nil, err
	}

	chunks := service.FilterChunks(keys)
	a.chunkCache.Set(chunkCacheKey, chunks)

	return chunks, nil
}
