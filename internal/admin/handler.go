// AngelaMos | 2026
// handler.go

package admin

import (
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/coursekit/internal/core"
)

// Handler exposes operational introspection for the admin. Domain rollups
// live on the dashboard; this is the process itself.
type Handler struct {
	db      *core.Database
	redis   *core.Redis
	started time.Time
	version string
}

func NewHandler(db *core.Database, redis *core.Redis, version string) *Handler {
	return &Handler{
		db:      db,
		redis:   redis,
		started: time.Now(),
		version: version,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/system", h.SystemStats)
}

type SystemStats struct {
	Version      string        `json:"version"`
	Uptime       string        `json:"uptime"`
	GoVersion    string        `json:"goVersion"`
	NumGoroutine int           `json:"numGoroutine"`
	HeapAllocMB  uint64        `json:"heapAllocMb"`
	Database     DatabaseStats `json:"database"`
	Redis        RedisStats    `json:"redis"`
}

type DatabaseStats struct {
	OpenConnections int `json:"openConnections"`
	InUse           int `json:"inUse"`
	Idle            int `json:"idle"`
}

type RedisStats struct {
	TotalConns uint32 `json:"totalConns"`
	IdleConns  uint32 `json:"idleConns"`
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
}

func (h *Handler) SystemStats(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	dbStats := h.db.Stats()
	poolStats := h.redis.PoolStats()

	core.OK(w, SystemStats{
		Version:      h.version,
		Uptime:       time.Since(h.started).Round(time.Second).String(),
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		HeapAllocMB:  mem.HeapAlloc / 1024 / 1024,
		Database: DatabaseStats{
			OpenConnections: dbStats.OpenConnections,
			InUse:           dbStats.InUse,
			Idle:            dbStats.Idle,
		},
		Redis: RedisStats{
			TotalConns: poolStats.TotalConns,
			IdleConns:  poolStats.IdleConns,
			Hits:       poolStats.Hits,
			Misses:     poolStats.Misses,
		},
	})
}
