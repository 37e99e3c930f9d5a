package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"vhsghost/signal-api/model"
	"vhsghost/signal-api/service"
	"vhsghost/signal-api/util"
	"vhsghost/signal-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type emailBody struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// EmailSubmit captures an email submission, throttled per IP through a
// store-backed counter. With no store configured the endpoint accepts
// submissions without persisting anything.
func (a *API) EmailSubmit(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	ip := c.ClientIP()
	now := time.Now()

	rateKey := "ratelimit_email_" + ip

	var history []int64

	if a.KV != nil {
		val, ok, err := a.KV.Get(c.Request.Context(), rateKey)
		if err != nil {
			a.submitError(c, requestID, "Failed to read rate-limit counter", err)
			return
		}

		if ok {
			if err := json.Unmarshal([]byte(val), &history); err != nil {
				zap.L().Error("Corrupt rate-limit counter, resetting", zap.String("ip", ip), zap.Error(err))
				history = nil
			}
		}

		if service.Throttled(history, now) {
			c.Header("X-RateLimit-Limit", strconv.Itoa(service.SubmissionLimit))
			c.Header("X-RateLimit-Remaining", "0")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "RATE LIMIT EXCEEDED",
			})
			return
		}
	}

	var data emailBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "SYSTEM ERROR",
		})
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		zap.L().Debug("Invalid email", zap.Error(err), zap.String("requestID", requestID))

		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "SYSTEM ERROR",
		})
		return
	}

	email := data.Email
	if len(email) > validators.MaxEmailLen {
		email = email[:validators.MaxEmailLen]
	}

	if a.KV != nil {
		submission, _ := json.Marshal(model.EmailSubmission{
			Email:     email,
			Username:  data.Username,
			Timestamp: now.UTC().Format(time.RFC3339),
			IP:        ip,
		})

		// The epoch-ms suffix keeps repeat submissions of the same
		// address from overwriting each other.
		key := fmt.Sprintf("email_%s_%d", util.SanitizeEmailKey(email), now.UnixMilli())

		if err := a.KV.Put(c.Request.Context(), key, string(submission), 0); err != nil {
			a.submitError(c, requestID, "Failed to persist email submission", err)
			return
		}

		counter, _ := json.Marshal(service.RecordSubmission(history, now))

		if err := a.KV.Put(c.Request.Context(), rateKey, string(counter), service.CounterTTL); err != nil {
			a.submitError(c, requestID, "Failed to update rate-limit counter", err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "ACCESS GRANTED",
	})
}

func (a *API) submitError(c *gin.Context, requestID, msg string, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "SYSTEM ERROR",
	})

	zap.L().Error(msg, zap.Error(err), zap.String("requestID", requestID))
}
