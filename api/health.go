package api

import (
	"log/slog"
	"net/http"
	"os"
	goruntime "runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/process"
)

// HealthHandler reports process-level liveness metrics for operators.
type HealthHandler struct {
	log     *slog.Logger
	proc    *process.Process
	started time.Time
}

func NewHealthHandler(log *slog.Logger) *HealthHandler {
	// A nil process handle only disables the OS metrics, never the route
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("Process handle unavailable, health will omit OS stats", "err", err)
	}
	return &HealthHandler{log: log, proc: proc, started: time.Now()}
}

func (h *HealthHandler) Report(c *gin.Context) {
	var memStats goruntime.MemStats
	goruntime.ReadMemStats(&memStats)

	report := gin.H{
		"pid":          os.Getpid(),
		"uptime":       time.Since(h.started).String(),
		"alloc_mem_mb": memStats.Alloc / 1024 / 1024,
		"num_gc":       memStats.NumGC,
	}

	if h.proc != nil {
		if memInfo, err := h.proc.MemoryInfo(); err == nil {
			report["rss_bytes"] = memInfo.RSS
		}
		if cpu, err := h.proc.CPUPercent(); err == nil {
			report["cpu_percent"] = cpu
		}
		if status, err := h.proc.Status(); err == nil {
			report["pid_status"] = status
		}
	}

	c.JSON(http.StatusOK, report)
}
