package api

import (
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// VideoServe streams a chunk from the bucket. Hotlinking is blocked by
// a referrer/origin prefix check; requests carrying neither header are
// let through because privacy tools and some mobile browsers strip
// both.
func (a *API) VideoServe(c *gin.Context) {
	referrer := c.GetHeader("Referer")
	if referrer == "" {
		referrer = c.GetHeader("Referrer")
	}
	origin := c.GetHeader("Origin")

	allowed := false
	for _, prefix := range viper.GetStringSlice("video.allowed_referrers") {
		if strings.HasPrefix(referrer, prefix) || (origin != "" && strings.HasPrefix(origin, prefix)) {
			allowed = true
			break
		}
	}

	directAccess := referrer == "" && origin == ""

	if !allowed && !directAccess {
		zap.L().Debug("Video access blocked",
			zap.String("referrer", referrer),
			zap.String("origin", origin),
		)

		c.Header("Cache-Control", "no-cache")
		c.String(http.StatusForbidden, "Access denied")
		return
	}

	if a.R2 == nil {
		c.String(http.StatusServiceUnavailable, "Video service unavailable")
		return
	}

	name := c.Param("name")
	ctx := c.Request.Context()

	obj, err := a.R2.Fetch(ctx, name)

	// Chunk names arrive from client-side playlists in slightly
	// mangled forms. Retry the common ones before giving up.
	if err == nil && obj == nil && !strings.HasSuffix(name, ".mp4") {
		obj, err = a.R2.Fetch(ctx, name+".mp4")
	}
	if err == nil && obj == nil && strings.Contains(name, " ") {
		obj, err = a.R2.Fetch(ctx, strings.ReplaceAll(name, " ", "_"))
	}

	if err != nil {
		zap.L().Error("Failed to serve video", zap.String("name", name), zap.Error(err))

		c.String(http.StatusInternalServerError, "Error loading video")
		return
	}

	if obj == nil {
		zap.L().Warn("Video not found in bucket", zap.String("name", name))

		c.String(http.StatusNotFound, "Video not found")
		return
	}
	defer obj.Body.Close()

	c.DataFromReader(http.StatusOK, aws.ToInt64(obj.ContentLength), "video/mp4", obj.Body, map[string]string{
		"Accept-Ranges":               "bytes",
		"Access-Control-Allow-Origin": "*",
		"Cache-Control":               "public, max-age=3600",
	})
}
