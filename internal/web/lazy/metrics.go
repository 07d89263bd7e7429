package lazy

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry creates components that report load outcomes and latency.
type Registry struct {
	loads   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

// NewRegistry registers the component load metrics on reg.
func NewRegistry(reg prometheus.Registerer) (*Registry, error) {
	r := &Registry{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_component_loads_total",
			Help: "Lazy component loads by outcome.",
		}, []string{"component", "result"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_component_load_seconds",
			Help:    "Time spent loading lazy components.",
			Buckets: prometheus.DefBuckets,
		}, []string{"component"}),
	}
	for _, c := range []prometheus.Collector{r.loads, r.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// New is lazy.New with metrics. A nil Registry yields a plain component.
func (r *Registry) New(name string, loader Loader) *Component {
	c := New(name, loader)
	c.metrics = r
	return c
}

func (r *Registry) observe(name string, err error, d time.Duration) {
	if r == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	r.loads.WithLabelValues(name, result).Inc()
	r.latency.WithLabelValues(name).Observe(d.Seconds())
}
