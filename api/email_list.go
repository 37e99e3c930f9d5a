package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type emailEntry struct {
	Key  string          `json:"key"`
	Data json.RawMessage `json:"data"`
}

// EmailList is a diagnostic listing of every captured submission,
// gated by a shared secret. An unset server-side secret rejects
// everything rather than opening the endpoint up.
func (a *API) EmailList(c *gin.Context) {
	secret := viper.GetString("secrets.emails_api")

	if secret == "" || c.Query("secret") != secret {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Unauthorized",
		})
		return
	}

	if a.KV == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "KV not available",
		})
		return
	}

	keys, err := a.KV.List(c.Request.Context(), "email_")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})

		zap.L().Error("Failed to list email submissions", zap.Error(err))
		return
	}

	emails := make([]emailEntry, 0, len(keys))

	for _, key := range keys {
		val, ok, err := a.KV.Get(c.Request.Context(), key)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": err.Error(),
			})

			zap.L().Error("Failed to read email submission", zap.String("key", key), zap.Error(err))
			return
		}

		entry := emailEntry{Key: key}
		if ok && json.Valid([]byte(val)) {
			entry.Data = json.RawMessage(val)
		}

		emails = append(emails, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(emails),
		"emails": emails,
	})
}
