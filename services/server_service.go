package services

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mclauncher/internal/logger"
)

var versionIntegrity = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "mclauncher_version_complete",
		Help: "1 when every object of a local version is present and valid",
	},
	[]string{"version"},
)

func init() {
	prometheus.MustRegister(versionIntegrity)
}

// ServerService runs the background jobs of the HTTP server.
type ServerService struct {
	launcher *Launcher
	interval time.Duration
}

func NewServerService(launcher *Launcher, interval time.Duration) *ServerService {
	return &ServerService{launcher: launcher, interval: interval}
}

/**
 * Periodically check every local version
 * @param {context.Context} ctx - Stops the loop when done
 * @description
 * - Disabled when the interval is not positive
 * - Runs one check immediately, then once per interval
 */
func (s *ServerService) StartMonitoring(ctx context.Context) {
	if s.interval <= 0 {
		logger.Info("Version monitoring is disabled (interval <= 0)")
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := s.CheckVersions(); err != nil {
			logger.Errorf("Version monitoring error: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

/**
 * Check all local versions once and publish the result as a gauge
 * @returns {error} Error listing the versions directory
 */
func (s *ServerService) CheckVersions() error {
	versions, err := s.launcher.LocalVersions()
	if err != nil {
		return err
	}
	for _, vs := range versions {
		v, err := s.launcher.LoadVersion(vs.ID)
		if err != nil {
			logger.Warnf("monitor: load version '%s' failed: %v", vs.ID, err)
			continue
		}
		ok, summary := s.launcher.CheckIntegrity(v)
		if ok {
			versionIntegrity.WithLabelValues(v.ID).Set(1)
			logger.Debugf("monitor: version '%s': %s", v.ID, summary)
		} else {
			versionIntegrity.WithLabelValues(v.ID).Set(0)
			logger.Warnf("monitor: version '%s': %s", v.ID, summary)
		}
	}
	return nil
}
