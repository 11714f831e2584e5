package main

import (
	postJob "github.com/Shot-your-pet/publications-groupe9/internal/domains/post/job"
	"github.com/Shot-your-pet/publications-groupe9/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	cleanupOrphan *postJob.CleanupOrphanHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		cleanupOrphan: postJob.NewCleanupOrphanHandler(c.PostRepo),
	}
}
