// Copyright (c) Microsoft. All rights reserved.

package azureai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Resource identifies a remotely created resource awaiting deletion.
type Resource struct {
	Kind string
	ID   string
}

func (r Resource) String() string { return r.Kind + " " + r.ID }

type cleanupStep struct {
	res Resource
	del func(ctx context.Context) error
}

// Cleanup records remote resources as they are created and deletes them
// when the program is done with them. Deletion runs in reverse creation
// order, so resources created first (usually the agent) are deleted last.
type Cleanup struct {
	mu     sync.Mutex
	steps  []cleanupStep
	logger *slog.Logger
}

// NewCleanup creates an empty [Cleanup]. logger may be nil.
func NewCleanup(logger *slog.Logger) *Cleanup {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleanup{logger: logger}
}

// Add registers a created resource together with the call that deletes it.
func (c *Cleanup) Add(kind, id string, del func(ctx context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steps = append(c.steps, cleanupStep{res: Resource{Kind: kind, ID: id}, del: del})
}

// Pending returns the resources not yet deleted, in creation order.
func (c *Cleanup) Pending() []Resource {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Resource, len(c.steps))
	for i, s := range c.steps {
		out[i] = s.res
	}
	return out
}

// Run deletes every registered resource. All deletions are attempted; the
// failures are joined into the returned error. Registered resources are
// forgotten whether or not their deletion succeeded, so a second Run is a
// no-op.
func (c *Cleanup) Run(ctx context.Context) error {
	c.mu.Lock()
	steps := c.steps
	c.steps = nil
	c.mu.Unlock()

	var errs []error
	for i := len(steps) - 1; i >= 0; i-- {
		s := steps[i]
		if err := s.del(ctx); err != nil {
			c.logger.ErrorContext(ctx, "delete failed", "kind", s.res.Kind, "id", s.res.ID, "error", err)
			errs = append(errs, fmt.Errorf("delete %s: %w", s.res, err))
			continue
		}
		c.logger.DebugContext(ctx, "deleted", "kind", s.res.Kind, "id", s.res.ID)
	}
	return errors.Join(errs...)
}
