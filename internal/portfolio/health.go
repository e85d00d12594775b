package portfolio

import (
	"bytes"
	"context"
	"strconv"
	"time"

	"folio/internal/kv"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

const healthCheckKey = "health_check_test"

type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error,omitempty"`
	Services  struct {
		Server   bool `json:"server"`
		Database bool `json:"database"`
	} `json:"services"`
	Version string `json:"version,omitempty"`
}

// HealthService probes the store with a set/get/del round trip of a
// throwaway key.
type HealthService struct {
	Store kv.Store
}

// Check reports "ok" with database=true only when the read-back value
// exactly equals what was written. Store errors degrade the status instead
// of propagating; the server is considered up if Check ran at all.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	var hs HealthStatus
	hs.Timestamp = isoTime(time.Now())
	hs.Services.Server = true

	written := []byte(strconv.FormatInt(time.Now().UnixMilli(), 10))
	if err := s.roundTrip(ctx, written, &hs.Services.Database); err != nil {
		hs.Status = "degraded"
		hs.Error = err.Error()
		hs.Services.Database = false
		return hs
	}

	hs.Status = "ok"
	hs.Version = Version
	return hs
}

func (s *HealthService) roundTrip(ctx context.Context, written []byte, ok *bool) error {
	if err := s.Store.Set(ctx, healthCheckKey, written); err != nil {
		return err
	}
	read, err := s.Store.Get(ctx, healthCheckKey)
	if err != nil {
		return err
	}
	if err := s.Store.Del(ctx, healthCheckKey); err != nil {
		return err
	}
	*ok = bytes.Equal(read, written)
	return nil
}
