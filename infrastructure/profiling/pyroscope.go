// Package profiling starts optional profiling for the service: continuous
// profiling pushed to Pyroscope and a localhost-only pprof listener.
package profiling

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"runtime"
	"time"

	"github.com/grafana/pyroscope-go"

	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
)

// Config enables the profilers. Both are off by default.
type Config struct {
	PyroscopeEnabled bool   `env:"ENABLE_CONTINUOUS_PROFILING" yaml:"pyroscope_enabled"`
	PyroscopeURL     string `env:"PYROSCOPE_SERVER_URL"        yaml:"pyroscope_url"`
	Environment      string `env:"PYROSCOPE_ENVIRONMENT"       yaml:"environment"`
	PprofEnabled     bool   `env:"ENABLE_PROFILING"            yaml:"pprof_enabled"`
	PprofPort        int    `env:"PPROF_PORT"                  yaml:"pprof_port"`
}

// SetDefaults fills in unset values.
func (c *Config) SetDefaults() {
	if c.PyroscopeURL == "" {
		c.PyroscopeURL = "http://pyroscope:4040"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.PprofPort == 0 {
		c.PprofPort = 6060
	}
}

// Profiler owns the running profilers.
type Profiler struct {
	pyroscope *pyroscope.Profiler
	pprof     *http.Server
}

// Start launches whatever cfg enables. It returns a usable, possibly idle,
// Profiler even when nothing is enabled.
func Start(cfg Config, service, version string, log logger.Logger) (*Profiler, error) {
	cfg.SetDefaults()
	p := &Profiler{}

	if cfg.PyroscopeEnabled {
		prof, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: service,
			ServerAddress:   cfg.PyroscopeURL,
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseSpace,
				pyroscope.ProfileGoroutines,
			},
			Tags: map[string]string{
				"environment": cfg.Environment,
				"version":     version,
				"hostname":    hostname(),
				"go_version":  runtime.Version(),
			},
		})
		if err != nil {
			return nil, fmt.Errorf("start pyroscope: %w", err)
		}
		p.pyroscope = prof
		log.Info("Continuous profiling started", logger.String("server", cfg.PyroscopeURL))
	}

	if cfg.PprofEnabled {
		mux := http.NewServeMux()
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

		p.pprof = &http.Server{
			Addr:              fmt.Sprintf("localhost:%d", cfg.PprofPort),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			if err := p.pprof.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn("pprof server stopped", logger.Error(err))
			}
		}()
		log.Info("pprof listening", logger.String("address", p.pprof.Addr))
	}

	return p, nil
}

// Stop stops every running profiler.
func (p *Profiler) Stop() error {
	if p == nil {
		return nil
	}
	var errs []error
	if p.pyroscope != nil {
		errs = append(errs, p.pyroscope.Stop())
	}
	if p.pprof != nil {
		errs = append(errs, p.pprof.Close())
	}
	return errors.Join(errs...)
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
