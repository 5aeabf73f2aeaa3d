package controller

import (
	"container/list"
	"go-forum-app/internal/logger"
	"go-forum-app/internal/principal"
	"go-forum-app/internal/service"
	"sync"
)

// DefaultRegistrySize is the number of controllers kept when none is configured.
const DefaultRegistrySize = 1024

// Registry hands out one Controller per caller. The least recently used
// controller is evicted once size is exceeded.
type Registry struct {
	forum service.Forum
	log   logger.Logger
	size  int

	mu      sync.Mutex
	order   *list.List
	entries map[principal.Principal]*list.Element
}

type registryEntry struct {
	owner      principal.Principal
	controller *Controller
}

// NewRegistry creates a Registry whose controllers use forum.
func NewRegistry(forum service.Forum, log logger.Logger, size int) *Registry {
	if size <= 0 {
		size = DefaultRegistrySize
	}
	return &Registry{
		forum:   forum,
		log:     log,
		size:    size,
		order:   list.New(),
		entries: make(map[principal.Principal]*list.Element),
	}
}

// For returns the controller of p, creating it on first use.
func (r *Registry) For(p principal.Principal) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	if el, ok := r.entries[p]; ok {
		r.order.MoveToFront(el)
		return el.Value.(*registryEntry).controller
	}

	c := New(r.forum, r.log.With(map[string]interface{}{"principal": p.String()}))
	r.entries[p] = r.order.PushFront(&registryEntry{owner: p, controller: c})
	for r.order.Len() > r.size {
		oldest := r.order.Back()
		r.order.Remove(oldest)
		delete(r.entries, oldest.Value.(*registryEntry).owner)
	}
	return c
}

// Len reports how many controllers are held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.order.Len()
}
