package main

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/arjunkrishnadas/expense-tracker/internal/budget"
	"github.com/arjunkrishnadas/expense-tracker/internal/chatbot"
	"github.com/arjunkrishnadas/expense-tracker/internal/config"
	"github.com/arjunkrishnadas/expense-tracker/internal/database"
	"github.com/arjunkrishnadas/expense-tracker/internal/routes"
)

// ScheduleBudgetRecheck re-evaluates every active budget once a day. Alerts
// normally fire on the write path; the recheck covers rows changed outside
// the API (imports, manual fixes).
func ScheduleBudgetRecheck(pool *pgxpool.Pool, engine *budget.Engine) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		now := time.Now()
		month, year := int(now.Month()), now.Year()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		userIDs, err := database.UsersWithActiveBudgets(ctx, pool, month)
		if err != nil {
			log.Printf("budget recheck: listing users: %v", err)
			return
		}
		for _, userID := range userIDs {
			if _, err := engine.EvaluateAll(ctx, userID, month, year); err != nil {
				log.Printf("budget recheck: user %d: %v", userID, err)
			}
		}
		log.Printf("budget recheck finished for %d users", len(userIDs))
	})
	if err != nil {
		log.Fatalf("scheduling budget recheck: %v", err)
	}
	c.Start()
	return c
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	pool, err := database.Connect(context.Background(), cfg)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer pool.Close()

	store := database.NewStore(pool)
	engine := budget.NewEngine(store)

	var agent chatbot.Agent
	if cfg.OllamaURL != "" {
		agent = chatbot.NewOllamaAgent(cfg.OllamaURL, cfg.OllamaModel)
		log.Printf("chatbot model backend enabled: %s (%s)", cfg.OllamaURL, cfg.OllamaModel)
	}
	resolver := chatbot.NewResolver(store, agent, cfg.OllamaTimeout)

	recheck := ScheduleBudgetRecheck(pool, engine)
	defer recheck.Stop()

	r := routes.SetupRouter(pool, engine, resolver, cfg.JWTSecret)
	log.Printf("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
