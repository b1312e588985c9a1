package service

import (
	"github.com/alexanderramin/wbs/internal/lock"
	"golang.org/x/sync/singleflight"
)

// Coordinator is the in-process state that services writing the same store
// must share: the per-project write locks and the in-flight collection
// loads. A committed write forgets the project's flight, so a read that
// starts after the write returns never joins a load begun before it.
type Coordinator struct {
	locks *lock.MutexMap
	reads singleflight.Group
}

func NewCoordinator() *Coordinator {
	return &Coordinator{locks: lock.NewMutexMap()}
}

// Held reports how many callers hold or wait for the project's write lock.
func (c *Coordinator) Held(projectID string) int {
	return c.locks.Held(projectID)
}

func (c *Coordinator) invalidate(projectID string) {
	c.reads.Forget(projectID)
}
