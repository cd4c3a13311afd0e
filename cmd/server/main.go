package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mateteriya/UpNDown-sub000/internal/config"
	"github.com/Mateteriya/UpNDown-sub000/internal/database"
	"github.com/Mateteriya/UpNDown-sub000/internal/handlers"
	"github.com/Mateteriya/UpNDown-sub000/internal/middleware"
	"github.com/Mateteriya/UpNDown-sub000/internal/tracing"
	ws "github.com/Mateteriya/UpNDown-sub000/pkg/websocket"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	shutdownTracer, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName: "upndown",
		Environment: cfg.AppEnv,
		PrettyPrint: cfg.AppEnv == "development",
	})
	if err != nil {
		log.Fatalf("tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	db, err := database.OpenAndMigrate(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	hubRef := ws.NewHubRef(ws.NewHub())
	go runHub(hubRef)

	handlers.SetWebSocketOriginPolicy(cfg)
	handlers.SetHubProvider(hubRef.Get)

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(otelgin.Middleware("upndown"))
	router.Use(middleware.DevCORS(cfg))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api := router.Group("/api")
	protected := api.Group("")
	protected.Use(middleware.RequireAuth(cfg))

	handlers.RegisterAuthRoutes(api, protected, db, cfg)
	handlers.RegisterRoomRoutes(protected, db)
	handlers.RegisterGameRoutes(protected, db)

	router.GET("/ws", handlers.WebSocketHandler(db, cfg))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	if hub, ok := hubRef.Get(); ok {
		hub.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}

// runHub keeps a hub running, replacing it if Run ever panics. Clients hold
// their own *Hub, so a replacement only affects new connections.
func runHub(ref *ws.HubRef) {
	for {
		hub, ok := ref.Get()
		if !ok {
			hub = ws.NewHub()
			ref.Set(hub)
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("hub panic: %v", r)
				}
			}()
			hub.Run()
		}()
		hub.Stop()
		ref.Set(ws.NewHub())
		time.Sleep(time.Second)
	}
}
