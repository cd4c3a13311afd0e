package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/Mateteriya/UpNDown-sub000/internal/game/updown"
	"github.com/Mateteriya/UpNDown-sub000/internal/models"
	"github.com/Mateteriya/UpNDown-sub000/internal/tracing"

	"github.com/gin-gonic/gin"
)

// BidStats summarizes how well a user's bids match what they actually took.
type BidStats struct {
	DealsPlayed  int64 `json:"deals_played"`
	BidsMade     int64 `json:"bids_made"`
	Overtakes    int64 `json:"overtakes"`
	Undertakes   int64 `json:"undertakes"`
	TotalBid     int64 `json:"total_bid"`
	TotalTaken   int64 `json:"total_taken"`
	TotalPoints  int64 `json:"total_points"`
	NoTrumpDeals int64 `json:"no_trump_deals"`
	DarkDeals    int64 `json:"dark_deals"`
}

// BidStatsHandler aggregates the caller's recent deal results into bid
// accuracy numbers. Tricks taken is reconstructed from (bid, points).
func BidStatsHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.BidStatsHandler")
		defer span.End()

		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		limit := int64(0)
		if v := c.Query("limit"); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
				return
			}
			limit = n
		}

		results, err := models.ListDealResultsByUser(db, userID, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		var stats BidStats
		for _, r := range results {
			taken := int64(updown.TakenFromDealPoints(int(r.Bid), int(r.Points)))
			stats.DealsPlayed++
			stats.TotalBid += r.Bid
			stats.TotalTaken += taken
			stats.TotalPoints += r.Points
			switch {
			case taken == r.Bid:
				stats.BidsMade++
			case taken > r.Bid:
				stats.Overtakes++
			default:
				stats.Undertakes++
			}
			switch r.DealKind {
			case string(updown.DealNoTrump):
				stats.NoTrumpDeals++
			case string(updown.DealDark):
				stats.DarkDeals++
			}
		}
		c.JSON(http.StatusOK, stats)
	}
}
