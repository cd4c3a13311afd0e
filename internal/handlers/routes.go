package handlers

import (
	"database/sql"

	"github.com/Mateteriya/UpNDown-sub000/internal/config"

	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(public, protected *gin.RouterGroup, db *sql.DB, cfg config.Config) {
	public.POST("/register", RegisterHandler(db, cfg))
	public.POST("/login", LoginHandler(db, cfg))
	protected.GET("/me", MeHandler(db))
	protected.POST("/logout", LogoutHandler(cfg))
}

func RegisterRoomRoutes(protected *gin.RouterGroup, db *sql.DB) {
	protected.GET("/rooms", ListRoomsHandler(db))
	protected.POST("/rooms", CreateRoomHandler(db))
	protected.POST("/rooms/join", JoinRoomHandler(db))
	protected.POST("/rooms/:id/add_bot", AddBotHandler(db))
}

func RegisterGameRoutes(protected *gin.RouterGroup, db *sql.DB) {
	protected.GET("/games/:id", GetGameHandler(db))
	protected.POST("/games/:id/move", MoveHandler(db))
	protected.GET("/games/:id/results", GameResultsHandler(db))
	protected.GET("/scoreboard", ScoreboardHandler(db))
	protected.GET("/scoreboard/:userId", UserStatsHandler(db))
	protected.GET("/me/bid_stats", BidStatsHandler(db))
}
