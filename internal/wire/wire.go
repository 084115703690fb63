// Package wire provides dependency injection for the SpecMentor application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/specmentor/internal/adapters/ai"
	cliadapter "github.com/example/specmentor/internal/adapters/cli"
	"github.com/example/specmentor/internal/adapters/memcache"
	"github.com/example/specmentor/internal/adapters/rediscache"
	"github.com/example/specmentor/internal/adapters/sqlite"
	"github.com/example/specmentor/internal/app"
	"github.com/example/specmentor/internal/config"
	"github.com/example/specmentor/internal/db"
	"github.com/example/specmentor/internal/ports/primary"
	"github.com/example/specmentor/internal/ports/secondary"
)

var (
	workflowService primary.WorkflowService
	projectService  primary.ProjectService
	actorID         string
	once            sync.Once
)

// WorkflowService returns the singleton WorkflowService instance.
func WorkflowService() primary.WorkflowService {
	once.Do(initServices)
	return workflowService
}

// ProjectService returns the singleton ProjectService instance.
func ProjectService() primary.ProjectService {
	once.Do(initServices)
	return projectService
}

// ActorID returns the configured acting user for CLI operations.
func ActorID() string {
	once.Do(initServices)
	return actorID
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to resolve working directory: %v", err)
	}

	// Config is optional; defaults apply when absent.
	cfg, err := config.LoadConfig(cwd)
	if err != nil {
		cfg = &config.Config{}
	}
	actorID = cfg.UserID

	database, err := db.GetDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports)
	projectRepo := sqlite.NewProjectRepository(database)
	docRepo := sqlite.NewDocumentRepository(database)
	transitions := sqlite.NewTransitionStore(database)
	approvalRepo := sqlite.NewApprovalRepository(database)
	reviewRepo := sqlite.NewReviewRepository(database)
	auditor := sqlite.NewAuditLogger(database)

	// Cache: Redis when configured and reachable, in-memory otherwise.
	var cache secondary.WorkflowCache = memcache.New()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("redis unavailable, falling back to in-memory cache: %v", err)
		} else {
			cache = rediscache.New(client)
		}
	}

	// AI review gateway is optional.
	var gateway secondary.ReviewGateway
	if cfg.AIGatewayURL != "" {
		gateway = ai.New(cfg.AIGatewayURL, cfg.AIGatewayKey, time.Duration(cfg.AITimeoutSec)*time.Second)
	}

	// Services (primary port implementations)
	workflowService = app.NewWorkflowService(projectRepo, docRepo, transitions, approvalRepo, reviewRepo, auditor, cache, gateway)
	projectService = app.NewProjectService(projectRepo, docRepo, auditor)
}

// WorkflowAdapter returns a new WorkflowAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func WorkflowAdapter() *cliadapter.WorkflowAdapter {
	return WorkflowAdapterWithOutput(os.Stdout)
}

// WorkflowAdapterWithOutput returns a new WorkflowAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func WorkflowAdapterWithOutput(out io.Writer) *cliadapter.WorkflowAdapter {
	once.Do(initServices)
	return cliadapter.NewWorkflowAdapter(workflowService, out)
}

// ProjectAdapter returns a new ProjectAdapter writing to stdout.
func ProjectAdapter() *cliadapter.ProjectAdapter {
	return ProjectAdapterWithOutput(os.Stdout)
}

// ProjectAdapterWithOutput returns a new ProjectAdapter writing to the given output.
func ProjectAdapterWithOutput(out io.Writer) *cliadapter.ProjectAdapter {
	once.Do(initServices)
	return cliadapter.NewProjectAdapter(projectService, out)
}
