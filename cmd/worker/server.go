package main

import (
	"log"

	"github.com/hibiken/asynq"

	"github.com/Shot-your-pet/publications-groupe9/internal/config"
	"github.com/Shot-your-pet/publications-groupe9/internal/shared"
)

// asynqServer wraps asynq.Server with its mux
type asynqServer struct {
	server *asynq.Server
}

func setupAsynqServer(cfg *config.Config, handlers *HandlerRegistry) *asynqServer {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"cleanup": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(shared.TypeCleanupOrphanPost, handlers.cleanupOrphan.ProcessTask)

	go func() {
		log.Printf("[Worker] Starting (redis: %s)", cfg.Redis.Addr)
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] Failed: %v", err)
		}
	}()

	return &asynqServer{server: srv}
}

// Shutdown gracefully shuts down the worker
func (s *asynqServer) Shutdown() {
	log.Println("[Worker] Shutting down...")
	s.server.Shutdown()
	log.Println("[Worker] ✓ Stopped")
}
