package helpers

import (
	"errors"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/go-mclib/menu/pkg/host/memhost"
	"github.com/go-mclib/menu/pkg/menu"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Flags holds common CLI flags for the menu tools.
type Flags struct {
	Player      string
	Rows        int
	Verbose     bool
	Interactive bool
	MaxLogLines int
	MetricsAddr string
}

// RegisterFlags registers the standard CLI flags on the default flag set.
func RegisterFlags(f *Flags) {
	flag.StringVar(&f.Player, "u", "Steve", "name of the simulated player")
	flag.IntVar(&f.Rows, "rows", 6, "rows of the demo chest menu (1-6)")
	flag.BoolVar(&f.Verbose, "v", false, "verbose logging")
	flag.BoolVar(&f.Interactive, "i", true, "render the menu in an interactive terminal UI")
	flag.IntVar(&f.MaxLogLines, "log-lines", 200, "max log lines kept in the terminal UI")
	flag.StringVar(&f.MetricsAddr, "metrics", "", "serve Prometheus metrics on this address (e.g. :9100)")
}

// NewRouter creates an in-memory host and a router attached to it, with
// metrics registered on reg.
func NewRouter(f Flags, reg prometheus.Registerer) (*menu.Router, *memhost.Host) {
	h := memhost.New()
	r := menu.NewRouter(h)
	r.Verbose = f.Verbose
	r.Logger = log.New(os.Stdout, "", log.LstdFlags)
	r.Metrics = menu.NewMetrics(reg)
	if err := r.Attach(h); err != nil {
		// a fresh router is never attached
		panic(err)
	}
	return r, h
}

// ServeMetrics serves reg on addr in the background. It does nothing for an
// empty addr.
func ServeMetrics(addr string, reg *prometheus.Registry, logger *log.Logger) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Println("metrics server:", err)
		}
	}()
}
