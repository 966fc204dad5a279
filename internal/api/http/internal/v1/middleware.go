package v1

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/attendly/backend/internal/domain"
	"github.com/attendly/backend/pkg/logger"
	"github.com/attendly/backend/pkg/signature"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	authorizationHeader = "Authorization"
	signatureHeader     = "X-Signature"
	timestampHeader     = "X-Timestamp"

	userCtx = "user"
)

func (h *Handler) userIdentityMiddleware(c *gin.Context) {
	id, err := h.parseAuthHeader(c)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			logger.Error("parse auth header failed", zap.Error(err))
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorStruct{Message: "unauthorized"})
		return
	}

	userID, err := uuid.Parse(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorStruct{Message: "unauthorized"})
		return
	}

	user, err := h.services.Users.GetOneByID(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorStruct{Message: "unauthorized"})
		return
	}

	c.Set(userCtx, user)
}

func (h *Handler) parseAuthHeader(c *gin.Context) (string, error) {
	header := c.GetHeader(authorizationHeader)
	if header == "" {
		return "", errors.New("empty auth header")
	}

	headerParts := strings.Split(header, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" {
		return "", errors.New("invalid auth header")
	}

	if len(headerParts[1]) == 0 {
		return "", errors.New("token is empty")
	}

	return h.tokenManager.Parse(headerParts[1])
}

// requireRole gates a route group on the authenticated user's role. Runs
// after userIdentityMiddleware.
func (h *Handler) requireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.currentUser(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorStruct{Message: "unauthorized"})
			return
		}

		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorStruct{
				Message: fmt.Sprintf("not authorized as %s", role),
			})
			return
		}

		c.Next()
	}
}

func (h *Handler) currentUser(c *gin.Context) (*domain.User, error) {
	v, ok := c.Get(userCtx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	user, ok := v.(*domain.User)
	if !ok {
		return nil, errors.New("user context has wrong type")
	}

	return user, nil
}

// signatureMiddleware validates the client HMAC over
// method+path+query+body+timestamp. Timestamps outside the freshness window
// come back 410, bad or replayed signatures 401.
func (h *Handler) signatureMiddleware(c *gin.Context) {
	sig := c.GetHeader(signatureHeader)
	tsHeader := c.GetHeader(timestampHeader)
	if sig == "" || tsHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message": "missing signature headers",
			"reason":  signature.ReasonInvalid,
		})
		return
	}

	ts, err := strconv.ParseInt(tsHeader, 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message": "malformed timestamp",
			"reason":  signature.ReasonInvalid,
		})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorStruct{Message: "failed to read body"})
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	serializedBody := string(body)
	if serializedBody == "" {
		serializedBody = "{}"
	}
	query := c.Request.URL.RawQuery

	ok, reason := signature.Verify(
		h.clientKey,
		c.Request.Method,
		c.Request.URL.Path,
		query,
		serializedBody,
		sig,
		ts,
		time.Now(),
		h.config.Signature.Window,
	)
	if !ok {
		status := http.StatusUnauthorized
		message := "signature verification failed"
		if reason == signature.ReasonStale {
			status = http.StatusGone
			message = "request timestamp outside the accepted window"
		}
		c.AbortWithStatusJSON(status, gin.H{"message": message, "reason": reason})
		return
	}

	if h.replayed(c, sig) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message": "signature already used",
			"reason":  signature.ReasonInvalid,
		})
		return
	}

	c.Next()
}

// replayed marks the signature as seen for twice the freshness window and
// reports whether it was seen before. Guard failures fail open so a cache
// outage cannot take the API down.
func (h *Handler) replayed(c *gin.Context, sig string) bool {
	if h.cache == nil {
		return false
	}

	key := "sig:" + sig
	set, err := h.cache.SetNX(c.Request.Context(), key, 1, 2*h.config.Signature.Window).Result()
	if err != nil {
		logger.Warn("signature replay guard unavailable", zap.Error(err))
		return false
	}

	return !set
}
