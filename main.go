package main

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/AksSC/finance/config"
	"github.com/AksSC/finance/handlers"
	"github.com/AksSC/finance/quote"
	"github.com/AksSC/finance/session"
	"github.com/AksSC/finance/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded:", err)
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	db, err := store.Open(cfg.DSN())
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("failed to connect to Redis: ", err)
	}

	sessions := session.NewManager(
		session.NewRedisStore(rdb),
		[]byte(cfg.SessionSecret),
		cfg.SessionTTL,
	)
	quotes := quote.NewClient(cfg.QuoteAPIURL, cfg.QuoteAPIKey)

	h := handlers.New(db, quotes, sessions)
	router := handlers.NewRouter(h, "templates/*.tmpl")

	log.Printf("listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("server error: ", err)
	}
}
