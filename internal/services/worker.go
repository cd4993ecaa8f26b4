package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// Janitor periodically drops workspaces that have been idle for too long.
type Janitor interface {
	Start(ctx context.Context)
	Stop()
}

type janitor struct {
	workspaces WorkspaceService
	maxIdle    time.Duration
	interval   time.Duration
	wg         sync.WaitGroup
	stopChan   chan struct{}
	stopOnce   sync.Once
}

func NewJanitor(workspaces WorkspaceService, maxIdle, interval time.Duration) Janitor {
	return &janitor{
		workspaces: workspaces,
		maxIdle:    maxIdle,
		interval:   interval,
		stopChan:   make(chan struct{}),
	}
}

// Start implements Janitor.
func (j *janitor) Start(ctx context.Context) {
	if j.interval <= 0 || j.maxIdle <= 0 {
		log.Println("⚠️  Workspace pruning disabled")
		return
	}

	j.wg.Add(1)
	go j.sweep(ctx)

	log.Printf("✅ Workspace janitor started (idle TTL %s, every %s)", j.maxIdle, j.interval)
}

// Stop implements Janitor.
func (j *janitor) Stop() {
	j.stopOnce.Do(func() {
		log.Println("🛑 Stopping workspace janitor...")
		close(j.stopChan)
	})
	j.wg.Wait()
}

func (j *janitor) sweep(ctx context.Context) {
	defer j.wg.Done()
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.stopChan:
			log.Println("🧹 Workspace janitor stopped")
			return
		case <-ctx.Done():
			log.Println("🧹 Workspace janitor stopped")
			return
		case <-ticker.C:
			j.workspaces.PruneIdle(j.maxIdle)
		}
	}
}
