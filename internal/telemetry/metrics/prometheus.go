package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ServiceInfo ends up as labels on the constant <namespace>_<subsystem>_service_info gauge.
type ServiceInfo struct {
	Version        string
	CatalogVersion string
}

// NewRegistry returns a registry with the runtime collectors, the service info
// gauge and any extra collectors.
func NewRegistry(namespace, subsystem string, info ServiceInfo, extraCollectors ...prometheus.Collector) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	version := info.Version
	if version == "" {
		version = "unknown"
	}
	serviceInfo := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "service_info",
		Help:      "Warm-up service version and loaded catalog version",
		ConstLabels: prometheus.Labels{
			"version":         version,
			"catalog_version": info.CatalogVersion,
		},
	})
	serviceInfo.Set(1)
	reg.MustRegister(serviceInfo)
	reg.MustRegister(extraCollectors...)

	return reg
}
