package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/fourohfour/recipeshare/internal/models"
	"github.com/fourohfour/recipeshare/internal/storage"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// maxStoredLogs caps the systemLogs blob; older records are pruned at flush.
const maxStoredLogs = 500

// StoreHandler is an slog.Handler that batches ERROR+ logs into the blob
// store under the systemLogs key.
type StoreHandler struct {
	store   storage.Store
	mu      sync.Mutex
	buffer  []models.SystemLog
	flushMu sync.Mutex
	ticker  *time.Ticker
	done    chan struct{}
}

func NewStoreHandler(store storage.Store) *StoreHandler {
	h := &StoreHandler{
		store:  store,
		buffer: make([]models.SystemLog, 0, 50),
		ticker: time.NewTicker(5 * time.Second),
		done:   make(chan struct{}),
	}
	go h.flushLoop()
	return h
}

func (h *StoreHandler) flushLoop() {
	for {
		select {
		case <-h.ticker.C:
			h.flush()
		case <-h.done:
			h.flush()
			return
		}
	}
}

func (h *StoreHandler) flush() {
	// Serializes the read-modify-write against the blob; concurrent
	// flushes would drop each other's batches otherwise.
	h.flushMu.Lock()
	defer h.flushMu.Unlock()

	h.mu.Lock()
	if len(h.buffer) == 0 {
		h.mu.Unlock()
		return
	}
	batch := h.buffer
	h.buffer = make([]models.SystemLog, 0, 50)
	h.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var existing []models.SystemLog
	if raw, err := h.store.Get(ctx, storage.KeySystemLogs); err == nil {
		// A corrupt blob is dropped rather than kept around.
		_ = json.Unmarshal(raw, &existing)
	}

	existing = append(existing, batch...)
	if len(existing) > maxStoredLogs {
		existing = existing[len(existing)-maxStoredLogs:]
	}

	raw, err := json.Marshal(existing)
	if err != nil {
		return
	}
	if err := h.store.Put(ctx, storage.KeySystemLogs, raw); err != nil {
		slog.Warn("failed to flush system logs to storage", "error", err, "count", len(batch))
	}
}

func (h *StoreHandler) Stop() {
	h.ticker.Stop()
	close(h.done)
}

// Enabled only handles ERROR and above.
func (h *StoreHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *StoreHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	record.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "trace_id":
			entry.TraceID = a.Value.String()
		case "user_id":
			entry.UserID = a.Value.String()
		case "action":
			entry.Action = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	})

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.mu.Lock()
	h.buffer = append(h.buffer, entry)
	needFlush := len(h.buffer) >= 50
	h.mu.Unlock()

	if needFlush {
		go h.flush()
	}
	return nil
}

func (h *StoreHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *StoreHandler) WithGroup(name string) slog.Handler {
	return h
}
