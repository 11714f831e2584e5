package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Shot-your-pet/publications-groupe9/internal/config"
	"github.com/Shot-your-pet/publications-groupe9/internal/domains/challenge"
	postHandler "github.com/Shot-your-pet/publications-groupe9/internal/domains/post/handler"
	postRepo "github.com/Shot-your-pet/publications-groupe9/internal/domains/post/repository"
	postService "github.com/Shot-your-pet/publications-groupe9/internal/domains/post/service"
	"github.com/Shot-your-pet/publications-groupe9/internal/infrastructure/bus"
	"github.com/Shot-your-pet/publications-groupe9/internal/infrastructure/database"
	"github.com/Shot-your-pet/publications-groupe9/internal/infrastructure/queue"
	"github.com/Shot-your-pet/publications-groupe9/pkg/snowflake"
)

// Container holds the application dependency graph. Everything in it is a
// singleton shared across requests; the snowflake generator and the
// challenge cache are the only stateful members and carry their own locks.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Bus    *nats.Conn
	Queue  *queue.Client

	IDGenerator    *snowflake.Generator
	ChallengeCache *challenge.Cache
	Publisher      *bus.Publisher

	PostRepo    postRepo.PostRepository
	PostService postService.PostService
	PostHandler *postHandler.PostHandler
}

// NewContainer initializes the dependency graph in order: config,
// infrastructure (Postgres, NATS, Redis queue), then repository, service
// and handler layers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	// Postgres
	db := database.NewPostgresDB(cfg.Database)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	// NATS
	nc, err := bus.Connect(cfg.Bus.URL, cfg.App.Name)
	if err != nil {
		db.Close()
		return nil, err
	}
	c.Bus = nc
	log.Println("✅ NATS connected")

	// Task queue (orphan reconciliation)
	c.Queue = queue.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// Identifier generator: one per process, machine id drawn at startup
	idGen, err := snowflake.NewGenerator()
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to create id generator: %w", err)
	}
	c.IDGenerator = idGen
	log.Printf("✅ Snowflake generator ready (machine %d, datacenter %d)",
		idGen.MachineID(), cfg.Publication.DatacenterID)

	// Challenge cache over the bus fetcher
	fetcher := bus.NewChallengeFetcher(nc, cfg.Bus.ChallengeSubject)
	c.ChallengeCache = challenge.NewCache(fetcher)

	// Publication event publisher
	c.Publisher = bus.NewPublisher(nc, cfg.Bus.TimelineSubject)

	// Domain wiring
	c.PostRepo = postRepo.NewPostgresPostRepository(db.Pool)
	c.PostService = postService.NewPostService(
		c.PostRepo,
		c.ChallengeCache,
		c.IDGenerator,
		c.Publisher,
		c.Queue,
		postService.SystemTimeProvider(),
		cfg.Publication.DatacenterID,
	)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)

	return c, nil
}

// Cleanup releases every infrastructure resource; safe to call on a
// partially built container.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Printf("⚠️  Failed to close queue client: %v", err)
		}
	}
	if c.Bus != nil {
		c.Bus.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
