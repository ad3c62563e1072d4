// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	// Internal packages
	"github.com/lumore-app/lumore-backend/internal/auth"
	"github.com/lumore-app/lumore-backend/internal/common/database"
	"github.com/lumore-app/lumore-backend/internal/config"
	"github.com/lumore-app/lumore-backend/internal/pairing"
	"github.com/lumore-app/lumore-backend/internal/scoring"
)

func main() {
	// Enable detailed logging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting Lumore Matching API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	log.Printf("✅ Configuration loaded")

	// 3. Validate configuration
	log.Println("\n✔️  Step 3: Validating configuration...")
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration is valid")

	// 4. Connect to PostgreSQL
	log.Println("\n🗄️  Step 4: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 5. Connect to Redis
	log.Println("\n📮 Step 5: Connecting to Redis...")
	redisClient, err := database.NewRedisClientFromURL(cfg.RedisURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to Redis:", err)
	}
	defer redisClient.Close()
	log.Println("✅ Connected to Redis successfully")

	// 6. Run database migrations
	log.Println("\n🔨 Step 6: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Printf("❌ Migration error: %v", err)
		log.Fatal("Failed to run migrations")
	}
	log.Println("✅ Database migrations completed")

	// 7. Initialize auth middleware
	log.Println("\n🔐 Step 7: Initializing auth middleware...")
	authMiddleware := auth.NewMiddleware(cfg.JWTSecret)
	log.Println("✅ Auth middleware initialized")

	// 8. Initialize Scoring module
	log.Println("\n🧮 Step 8: Initializing Scoring module...")

	scoringRepo := scoring.NewPostgresRepository(db)
	matchMemo := scoring.NewMatchMemo(cfg.MatchMemoMaxEntries)
	compatScorer := scoring.NewCompatibilityScorer(matchMemo)

	var aiScorer scoring.AIScorer
	if cfg.EnableAIScoring {
		geminiScorer, err := scoring.NewGeminiScorer(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("   ⚠️  Warning: AI scoring disabled: %v", err)
		} else {
			defer geminiScorer.Close()
			aiScorer = geminiScorer
			log.Println("   ✅ Gemini AI scorer enabled")
		}
	} else {
		log.Println("   📝 AI scoring disabled")
	}

	scoringService := scoring.NewService(scoringRepo, compatScorer, aiScorer, cfg.CompatibilityCacheTTL)
	scoringHandler := scoring.NewHandler(scoringService)
	log.Println("✅ Scoring module initialized")

	// 9. Initialize Pairing module
	log.Println("\n💞 Step 9: Initializing Pairing module...")

	pairingRepo := pairing.NewPostgresRepository(db)
	usageStore := pairing.NewRedisUsageStore(redisClient)
	limiter := pairing.NewDailyUsageLimiter(usageStore)
	pairingService := pairing.NewService(pairingRepo, scoringService, limiter, cfg.FeedTargetSize)
	pairingHandler := pairing.NewHandler(pairingService)
	log.Println("✅ Pairing module initialized")

	// 10. Set up routes
	log.Println("\n🌐 Step 10: Setting up routes...")
	router := mux.NewRouter()

	scoring.RegisterRoutes(router, scoringHandler, authMiddleware)
	log.Println("   ✅ Scoring routes registered")

	pairing.RegisterRoutes(router, pairingHandler, authMiddleware)
	log.Println("   ✅ Pairing routes registered")

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/health", healthHandler(db, redisClient)).Methods("GET")
	log.Println("   ✅ Metrics and health routes registered")

	// Add middleware
	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 11. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("✅ Server exited gracefully")
}

// healthHandler reports database and Redis connectivity
func healthHandler(db *sqlx.DB, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok"}
		code := http.StatusOK

		if err := db.PingContext(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			code = http.StatusServiceUnavailable
		}

		if err := redisClient.Ping(r.Context()).Err(); err != nil {
			status["status"] = "degraded"
			status["redis"] = err.Error()
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(status)
	}
}

// Middleware functions

// loggingMiddleware logs all requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log.Printf("→ %s %s from %s", r.Method, r.RequestURI, r.RemoteAddr)

		// Wrap response writer to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log.Printf("← %s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// runMigrations executes database migrations
func runMigrations(db *sqlx.DB) error {
	log.Println("   - Creating/updating tables...")

	migrations := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
            user_id VARCHAR(64) PRIMARY KEY,
            full_name VARCHAR(255),
            date_of_birth DATE,
            bio TEXT,
            interests TEXT[] DEFAULT '{}',
            university VARCHAR(255),
            height DOUBLE PRECISION,
            body_type VARCHAR(50),
            skin_tone VARCHAR(50),
            face_type VARCHAR(50),
            personality_type VARCHAR(50),
            values VARCHAR(100),
            mindset VARCHAR(100),
            lifestyle VARCHAR(100),
            qualities JSONB,
            requirements JSONB,
            total_qcs INTEGER,
            created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE TABLE IF NOT EXISTS qcs_scores (
            user_id VARCHAR(64) PRIMARY KEY REFERENCES profiles(user_id),
            total_score INTEGER NOT NULL CHECK (total_score BETWEEN 0 AND 100),
            logic_score INTEGER NOT NULL,
            ai_score INTEGER,
            per_category JSONB,
            updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE TABLE IF NOT EXISTS compatibility_scores (
            user1_id VARCHAR(64) NOT NULL,
            user2_id VARCHAR(64) NOT NULL,
            compatibility_score DOUBLE PRECISION NOT NULL,
            physical_score DOUBLE PRECISION NOT NULL,
            mental_score DOUBLE PRECISION NOT NULL,
            calculated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
            PRIMARY KEY (user1_id, user2_id),
            CHECK (user1_id < user2_id)
        )`,

		`CREATE TABLE IF NOT EXISTS subscriptions (
            id SERIAL PRIMARY KEY,
            user_id VARCHAR(64) NOT NULL REFERENCES profiles(user_id),
            plan_id VARCHAR(50) NOT NULL DEFAULT 'free',
            status VARCHAR(20) NOT NULL DEFAULT 'active',
            created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE TABLE IF NOT EXISTS swipes (
            swiper_id VARCHAR(64) NOT NULL,
            swiped_id VARCHAR(64) NOT NULL,
            action VARCHAR(20) NOT NULL,
            created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
            PRIMARY KEY (swiper_id, swiped_id)
        )`,

		`CREATE TABLE IF NOT EXISTS blocks (
            blocker_id VARCHAR(64) NOT NULL,
            blocked_id VARCHAR(64) NOT NULL,
            created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
            PRIMARY KEY (blocker_id, blocked_id)
        )`,

		`CREATE TABLE IF NOT EXISTS ghosts (
            ghoster_id VARCHAR(64) NOT NULL,
            ghosted_id VARCHAR(64) NOT NULL,
            expires_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
            PRIMARY KEY (ghoster_id, ghosted_id)
        )`,

		`CREATE INDEX IF NOT EXISTS idx_profiles_total_qcs ON profiles(total_qcs)`,
		`CREATE INDEX IF NOT EXISTS idx_subscriptions_user ON subscriptions(user_id, status)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
