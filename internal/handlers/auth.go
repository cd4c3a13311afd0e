package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Mateteriya/UpNDown-sub000/internal/auth"
	"github.com/Mateteriya/UpNDown-sub000/internal/config"
	"github.com/Mateteriya/UpNDown-sub000/internal/models"
	"github.com/Mateteriya/UpNDown-sub000/internal/tracing"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func setAuthCookie(c *gin.Context, cfg config.Config, token string) {
	secure := cfg.AppEnv != "development"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.AuthCookieName, token, int(cfg.JWTTTL.Seconds()), "/", "", secure, true)
}

func clearAuthCookie(c *gin.Context, cfg config.Config) {
	secure := cfg.AppEnv != "development"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.AuthCookieName, "", -1, "/", "", secure, true)
}

func RegisterHandler(db *sql.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.RegisterHandler")
		defer span.End()

		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if len(req.Username) < 3 || len(req.Username) > 32 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username must be 3-32 characters"})
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			if auth.IsPasswordValidationError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			log.Printf("hash password failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		user, err := models.CreateUser(db, req.Username, hash)
		if err != nil {
			if models.IsUniqueConstraint(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
				return
			}
			log.Printf("create user failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		token, err := auth.GenerateToken(user.ID, user.Username, cfg)
		if err != nil {
			log.Printf("generate token failed: user_id=%d err=%v", user.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		setAuthCookie(c, cfg, token)
		c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
	}
}

func LoginHandler(db *sql.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.LoginHandler")
		defer span.End()

		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		user, err := models.GetUserByUsername(db, strings.TrimSpace(req.Username))
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if err := auth.ComparePasswordHash(user.PasswordHash, req.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		token, err := auth.GenerateToken(user.ID, user.Username, cfg)
		if err != nil {
			log.Printf("generate token failed: user_id=%d err=%v", user.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		setAuthCookie(c, cfg, token)
		c.JSON(http.StatusOK, authResponse{Token: token, User: user})
	}
}

func MeHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.MeHandler")
		defer span.End()

		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		user, err := models.GetUserByID(db, userID)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

func LogoutHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.LogoutHandler")
		defer span.End()

		clearAuthCookie(c, cfg)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
