package main

// @title           OSG Search API
// @version         1.0
// @description     Search front end over an OpenSearch-compatible backend: query building, document normalisation, page-local facets and instant answers.

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/whiskeycoder/osg-search/internal/adapters/driven/opensearch"
	"github.com/whiskeycoder/osg-search/internal/adapters/driven/postgres"
	redisadapter "github.com/whiskeycoder/osg-search/internal/adapters/driven/redis"
	"github.com/whiskeycoder/osg-search/internal/adapters/driving/http"
	"github.com/whiskeycoder/osg-search/internal/adapters/driving/proxy"
	"github.com/whiskeycoder/osg-search/internal/core/ports/driven"
	"github.com/whiskeycoder/osg-search/internal/core/ports/driving"
	"github.com/whiskeycoder/osg-search/internal/core/services"
)

var version = "dev"

func main() {
	// Get run mode from environment (RUN_MODE) or command line arg
	mode := getEnv("RUN_MODE", "all")
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	log.Printf("osg-search %s starting in %s mode", version, mode)

	// Configuration from environment
	port := getEnvInt("PORT", 8080)
	proxyPort := getEnvInt("PROXY_PORT", 8081)
	openSearchURL := getEnv("OPENSEARCH_URL", "http://localhost:9200")
	openSearchIndex := getEnv("OPENSEARCH_INDEX", "file_index")
	corsOrigin := getEnv("CORS_ORIGIN", "*")
	redisURL := getEnv("REDIS_URL", "")
	databaseURL := getEnv("DATABASE_URL", "")
	searchTimeout := time.Duration(getEnvInt("SEARCH_TIMEOUT_SEC", 30)) * time.Second

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutdown signal received, stopping...")
		cancel()
	}()

	// ===== Initialize Redis (optional) =====
	var redisClient *redis.Client
	var resultCache driven.ResultCache
	if redisURL != "" {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		resultCache = redisadapter.NewResultCache(redisClient)
		log.Println("Redis connected, result caching enabled")
	}

	// ===== Initialize PostgreSQL (optional) =====
	var db *postgres.DB
	var historyStore driven.HistoryStore
	if databaseURL != "" {
		log.Println("Connecting to PostgreSQL...")
		dbConfig := postgres.Config{
			URL:             databaseURL,
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300)) * time.Second,
			ConnMaxIdleTime: time.Duration(getEnvInt("DB_CONN_MAX_IDLE_SEC", 60)) * time.Second,
		}
		var err error
		db, err = postgres.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Initialize schema (idempotent)
		if err := db.InitSchema(ctx); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		historyStore = postgres.NewHistoryStore(db)
		log.Println("PostgreSQL connected, search history enabled")
	}

	// ===== Initialize OpenSearch =====
	log.Println("Connecting to OpenSearch...")
	engineCfg := opensearch.DefaultConfig(openSearchURL)
	engineCfg.Timeout = searchTimeout
	searchEngine := opensearch.NewSearchEngine(engineCfg)
	if err := searchEngine.HealthCheck(ctx); err != nil {
		log.Printf("Warning: OpenSearch health check failed: %v (search may not work)", err)
	} else {
		log.Println("OpenSearch connected")
		if err := searchEngine.CheckCollection(ctx, openSearchIndex); err != nil {
			log.Printf("Warning: collection check failed: %v", err)
		}
	}

	// ===== Core service =====
	searchService := services.NewSearchService(searchEngine, resultCache, historyStore, services.SearchConfig{
		Collection: openSearchIndex,
		CacheTTL:   time.Duration(getEnvInt("CACHE_TTL_SEC", 60)) * time.Second,
	})

	switch mode {
	case "api":
		runAPI(port, corsOrigin, searchService, db, redisClient)

	case "proxy":
		runProxy(proxyPort, corsOrigin, openSearchURL)

	case "all":
		// Combined mode: proxy in background, API in foreground (blocks)
		go runProxy(proxyPort, corsOrigin, openSearchURL)
		runAPI(port, corsOrigin, searchService, db, redisClient)

	default:
		log.Fatalf("Unknown mode: %s (use: api, proxy, or all)", mode)
	}
}

func runAPI(
	port int,
	corsOrigin string,
	searchService driving.SearchService,
	db *postgres.DB,
	redisClient *redis.Client,
) {
	cfg := http.Config{
		Host:           "0.0.0.0",
		Port:           port,
		Version:        version,
		AllowedOrigins: []string{corsOrigin},
	}

	var dbPinger http.Pinger
	if db != nil {
		dbPinger = db
	}
	var redisPinger http.Pinger
	if redisClient != nil {
		redisPinger = redisPingAdapter{client: redisClient}
	}

	server := http.NewServer(cfg, searchService, dbPinger, redisPinger)

	log.Printf("API server starting on :%d", port)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func runProxy(port int, corsOrigin, target string) {
	cfg := proxy.DefaultConfig(target)
	cfg.Port = port
	cfg.AllowedOrigin = corsOrigin
	cfg.Username = getEnv("OPENSEARCH_USERNAME", "")
	cfg.Password = getEnv("OPENSEARCH_PASSWORD", "")

	server, err := proxy.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create proxy: %v", err)
	}

	log.Printf("Proxy starting on :%d", port)
	if err := server.Start(); err != nil {
		log.Fatalf("Proxy error: %v", err)
	}
}

// redisPingAdapter adapts the redis client to the server's Pinger interface
type redisPingAdapter struct {
	client *redis.Client
}

func (a redisPingAdapter) Ping(ctx context.Context) error {
	return a.client.Ping(ctx).Err()
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
