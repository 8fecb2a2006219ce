package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/fitcenter/backend/internal/logger"
	"github.com/fitcenter/backend/internal/models"
	"github.com/go-redis/redis/v8"
)

// LedgerEventsChannel is the redis pub/sub channel ledger events go to.
const LedgerEventsChannel = "points:events"

// Notifier fans ledger events out to in-process subscribers and, when a
// redis client is configured, to other processes. Delivery is best effort:
// a slow subscriber misses events rather than blocking a mutation.
type Notifier struct {
	mu          sync.RWMutex
	subscribers map[int]chan models.LedgerEvent
	nextID      int
	redis       *redis.Client
	log         *logger.Logger
}

func NewNotifier(redisClient *redis.Client, log *logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{
		subscribers: make(map[int]chan models.LedgerEvent),
		redis:       redisClient,
		log:         log,
	}
}

// Subscribe returns a buffered event channel and a function that closes it.
func (n *Notifier) Subscribe(buffer int) (<-chan models.LedgerEvent, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan models.LedgerEvent, buffer)

	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subscribers[id] = ch
	n.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subscribers, id)
			n.mu.Unlock()
			close(ch)
		})
	}
}

func (n *Notifier) Publish(ctx context.Context, event models.LedgerEvent) {
	if n == nil {
		return
	}

	n.mu.RLock()
	for _, ch := range n.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
	n.mu.RUnlock()

	if n.redis == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		n.log.Error(ctx, "marshal ledger event", err)
		return
	}
	if err := n.redis.Publish(ctx, LedgerEventsChannel, payload).Err(); err != nil {
		n.log.Warn(ctx, "publish ledger event: "+err.Error())
	}
}
