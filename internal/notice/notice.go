package notice

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"clamood/console/internal/ids"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a global, user-facing message. It is shown once.
type Notice struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Center queues notices until the operator's next page view drains them.
// The queue is bounded; the oldest notices are dropped first.
type Center struct {
	mu      sync.Mutex
	pending []Notice
	limit   int
	log     zerolog.Logger
}

func NewCenter(limit int, log zerolog.Logger) *Center {
	if limit <= 0 {
		limit = 20
	}
	return &Center{limit: limit, log: log}
}

func (c *Center) Success(message string) {
	c.push(LevelSuccess, message)
}

func (c *Center) Error(message string) {
	c.push(LevelError, message)
}

func (c *Center) push(level Level, message string) {
	n := Notice{
		ID:        ids.New(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}

	c.mu.Lock()
	c.pending = append(c.pending, n)
	if over := len(c.pending) - c.limit; over > 0 {
		c.pending = c.pending[over:]
	}
	c.mu.Unlock()

	event := c.log.Info()
	if level == LevelError {
		event = c.log.Warn()
	}
	event.Str("notice_id", n.ID).Str("level", string(level)).Msg(message)
}

// Drain returns the queued notices and empties the queue.
func (c *Center) Drain() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.pending
	c.pending = nil
	if out == nil {
		return []Notice{}
	}
	return out
}
