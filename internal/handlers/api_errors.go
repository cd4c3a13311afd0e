package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/Mateteriya/UpNDown-sub000/internal/models"

	"github.com/gin-gonic/gin"
)

// writeAPIError maps sentinel errors to HTTP statuses with safe messages.
// Raw error text is never echoed for unknown errors.
func writeAPIError(c *gin.Context, err error) {
	if err == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrGameNotFound) || errors.Is(err, sql.ErrNoRows) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	switch {
	case errors.Is(err, models.ErrInvalidJSON):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
	case errors.Is(err, models.ErrInvalidCard):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid card"})
	case errors.Is(err, models.ErrNotAPlayer):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not a player"})
	case errors.Is(err, models.ErrNotYourTurn):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "not your turn"})
	case errors.Is(err, models.ErrNotBiddingPhase):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "not in a bidding phase"})
	case errors.Is(err, models.ErrNotPlayingPhase):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "not in the playing phase"})
	case errors.Is(err, models.ErrBidRejected):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "bid rejected"})
	case errors.Is(err, models.ErrCardNotInHand):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "card not in hand"})
	case errors.Is(err, models.ErrIllegalPlay):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "play violates follow-suit rules"})
	case errors.Is(err, models.ErrInvalidSeat):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid seat"})
	case errors.Is(err, models.ErrDealNotComplete):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "deal not complete"})
	case errors.Is(err, models.ErrGameNotStarted):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "game not started"})
	case errors.Is(err, models.ErrMatchComplete):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "match complete"})
	case errors.Is(err, models.ErrUnknownMoveType):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown move type"})
	case errors.Is(err, models.ErrRoomFull):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "room full"})
	case errors.Is(err, models.ErrRoomNotJoinable):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "room not joinable"})
	case errors.Is(err, models.ErrGameStateConflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "game state conflict; retry"})
	case errors.Is(err, models.ErrGameStateMissing):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "game state unavailable"})
	default:
		log.Printf("internal error: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
