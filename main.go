package main

import (
	"context"
	"log"

	"go-lifeline/allocation"
	"go-lifeline/config"
	"go-lifeline/cronjobs"
	"go-lifeline/db"
	"go-lifeline/geocode"
	"go-lifeline/intake"
	"go-lifeline/lifecycle"
	"go-lifeline/mockdata"
	"go-lifeline/notify"
	"go-lifeline/recorder"
	"go-lifeline/routes"
	"go-lifeline/summarization"
	"go-lifeline/training"

	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Change notifications: Redis pub/sub when configured, otherwise a no-op.
	var notifier notify.Notifier = notify.Nop{}
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis at %s unreachable, change notifications disabled: %v", cfg.RedisAddr, err)
		} else {
			notifier = notify.NewRedisNotifier(redisClient)
			log.Println("Change notifications via Redis enabled")
		}
	}

	// Storage: Firestore when credentials are present, otherwise in-memory.
	var store db.Store
	if cfg.FirebaseCredentials != "" {
		firestoreClient, err := db.NewFirestoreClient(ctx, cfg.FirebaseCredentials)
		if err != nil {
			log.Fatalf("Failed to initialize Firestore: %v", err)
		}
		defer firestoreClient.Close() // Firestore client is closed on exit
		store = db.NewFirestoreStore(firestoreClient, notifier)
		log.Println("Using Firestore storage")
	} else {
		store = db.NewMemoryStore(notifier)
		log.Println("FIREBASE_CREDENTIALS not set, using in-memory storage")
	}

	// Summaries: OpenAI when a key is present, otherwise the deterministic
	// template.
	var summarizer summarization.Summarizer = summarization.TemplateSummarizer{}
	if cfg.OpenAIAPIKey != "" {
		summarizer = summarization.NewOpenAISummarizer(openai.NewClient(cfg.OpenAIAPIKey))
		log.Println("OPENAI_API_KEY loaded, using OpenAI summaries")
	}

	// Geocoding backfill for reports that arrive without coordinates.
	var geocoder geocode.Resolver
	if cfg.MapsAPIKey != "" {
		resolver, err := geocode.NewMapsResolver(cfg.MapsAPIKey)
		if err != nil {
			log.Fatalf("Failed to create Maps client: %v", err)
		}
		geocoder = resolver
		log.Println("Geocoding backfill enabled")
	}

	rec := recorder.New(store)
	orchestrator := intake.NewOrchestrator(store, summarizer, rec, geocoder)
	manager := lifecycle.NewManager(store, rec)
	engine := allocation.NewEngine(store, allocation.FixedScore)
	loader := mockdata.NewLoader(cfg.MockDataDir)
	trigger := training.NewTrigger(store)

	// Initialize cron jobs
	cronjobs.InitCronJobs(store, notifier)

	r := routes.SetupRouter(routes.Deps{
		Store:        store,
		Orchestrator: orchestrator,
		Lifecycle:    manager,
		Allocator:    engine,
		MockData:     loader,
		Training:     trigger,
	})
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
