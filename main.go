package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"amardoctor/admin"
	"amardoctor/agi"
	"amardoctor/auth"
	"amardoctor/cart"
	"amardoctor/chats"
	"amardoctor/db"
	"amardoctor/globals"
	"amardoctor/mq"
	"amardoctor/notifications"
	"amardoctor/orders"
	"amardoctor/prescriptions"
	"amardoctor/pricelist"
	"amardoctor/profile"
	"amardoctor/ratelim"
	"amardoctor/rdx"
	"amardoctor/routes"
	"amardoctor/settings"
	"amardoctor/state"
	"amardoctor/store"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s - %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

// openStore picks the persistence backend. Mongo is the default; set
// STORE_BACKEND=redis to keep everything in Redis instead.
func openStore(ctx context.Context) (store.Store, error) {
	if os.Getenv("STORE_BACKEND") == "redis" {
		return store.NewRedisStore(rdx.Conn), nil
	}
	if err := db.Connect(ctx); err != nil {
		return nil, err
	}
	return store.NewMongoStore(db.StoreCollection), nil
}

func setupRouter(app *state.App, history *prescriptions.History, ai agi.Client, rateLimiter *ratelim.RateLimiter) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	routes.AddAuthRoutes(router, auth.NewHandler(app), rateLimiter)
	routes.AddProfileRoutes(router, profile.NewHandler(app))
	routes.AddCartRoutes(router, cart.NewHandler(app))
	routes.AddOrderRoutes(router, orders.NewHandler(app))
	routes.AddPriceListRoutes(router, pricelist.NewHandler(app))
	routes.AddChatRoutes(router, chats.NewHandler(app))
	routes.AddNotificationRoutes(router, notifications.NewHandler(app))
	routes.AddPrescriptionRoutes(router, prescriptions.NewHandler(app, history, ai), rateLimiter)
	routes.AddSettingsRoutes(router, settings.NewHandler(app))
	routes.AddAdminRoutes(router, admin.NewHandler(app))

	return router
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	// Redis is optional with the Mongo backend; the toast publisher just
	// stays quiet without it.
	if err := rdx.Connect(globals.Ctx); err != nil {
		if os.Getenv("STORE_BACKEND") == "redis" {
			log.Fatalf("❌ Redis connection failed: %v", err)
		}
		log.Printf("Redis unavailable, toast events disabled: %v", err)
		rdx.Conn = nil
	}

	kv, err := openStore(globals.Ctx)
	if err != nil {
		log.Fatalf("❌ Store initialization failed: %v", err)
	}

	app := state.New(kv)
	app.Load(globals.Ctx)
	app.SetToaster(func(to, message string) {
		mq.Emit(globals.Ctx, mq.ToastEvent{To: to, Message: message})
	})

	history := prescriptions.NewHistory(kv)
	ai := agi.NewGeminiClient()
	rateLimiter := ratelim.NewRateLimiter()

	router := setupRouter(app, history, ai, rateLimiter)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}
	if err := db.Disconnect(ctx); err != nil {
		log.Printf("Mongo disconnect: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
