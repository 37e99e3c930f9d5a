package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vhsghost/signal-api/model"
	"vhsghost/signal-api/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// userPageData is what the terminal page embeds as its userData
// script object. Numbers arrive pre-formatted; the page only types
// them out.
type userPageData struct {
	Username       string `json:"username"`
	UserID         string `json:"user_id"`
	Followers      string `json:"followers"`
	Following      string `json:"following"`
	PostsCount     string `json:"posts_count"`
	EngagementRate string `json:"engagement_rate"`
	VideoSent      string `json:"video_sent"`
	SentAt         string `json:"sent_at"`
}

type terminalPage struct {
	User userPageData
}

type deniedPage struct {
	Message   string
	Timestamp string
	Username  string
}

// Root serves the access denied page for the bare origin.
func (a *API) Root(c *gin.Context) {
	a.renderDenied(c, "ACCESS DENIED", "unknown")
}

// ProfilePage looks up the path segment as a username and renders the
// terminal page, or the denied page when nothing matches.
func (a *API) ProfilePage(c *gin.Context) {
	a.renderProfile(c, c.Param("username"))
}

// NotFound catches deeper paths. They get the same username treatment
// single-segment paths do: sanitized, looked up, denied.
func (a *API) NotFound(c *gin.Context) {
	a.renderProfile(c, strings.TrimPrefix(c.Request.URL.Path, "/"))
}

func (a *API) renderProfile(c *gin.Context, raw string) {
	requestID := c.MustGet("requestID").(string)
	username := util.SanitizeUsername(raw)

	var record *model.UserRecord

	if a.KV != nil {
		val, ok, err := a.KV.Get(c.Request.Context(), username)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to look up user record", zap.String("username", username), zap.Error(err))
			return
		}

		if ok {
			record = &model.UserRecord{}
			if err := json.Unmarshal([]byte(val), record); err != nil {
				// A corrupt record is treated as a miss, the demo
				// table may still know the name.
				zap.L().Error("Failed to decode user record", zap.String("username", username), zap.Error(err))
				record = nil
			}
		}
	}

	if record == nil {
		record = model.DemoUser(username)
	}

	if record == nil {
		a.renderDenied(c, "STATUS: NO MATCH IN DATABASE", username)
		return
	}

	page := terminalPage{
		User: userPageData{
			Username:       record.Username,
			UserID:         record.UserID,
			Followers:      util.FormatCount(record.Followers),
			Following:      util.FormatCount(record.Following),
			PostsCount:     strconv.FormatInt(record.PostsCount, 10),
			EngagementRate: util.FormatEngagement(record.AvgEngagement),
			VideoSent:      util.FormatChunkName(record.VideoSent),
			SentAt:         record.SentAt,
		},
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("X-Frame-Options", "DENY")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Referrer-Policy", "no-referrer")

	c.HTML(http.StatusOK, "terminal.html", page)
}

func (a *API) renderDenied(c *gin.Context, message, username string) {
	c.HTML(http.StatusNotFound, "denied.html", deniedPage{
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Username:  username,
	})
}
