package api

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// FilteredGatherer wraps a gatherer to only return metrics matching a prefix
type FilteredGatherer struct {
	gatherer prometheus.Gatherer
	prefix   string
}

func NewFilteredGatherer(gatherer prometheus.Gatherer, prefix string) *FilteredGatherer {
	return &FilteredGatherer{
		gatherer: gatherer,
		prefix:   prefix,
	}
}

func (fg *FilteredGatherer) Gather() ([]*dto.MetricFamily, error) {
	all, err := fg.gatherer.Gather()
	if err != nil {
		return nil, err
	}

	filtered := make([]*dto.MetricFamily, 0, len(all))
	for _, mf := range all {
		if strings.HasPrefix(mf.GetName(), fg.prefix) {
			filtered = append(filtered, mf)
		}
	}

	return filtered, nil
}

// SteamHandler returns a handler that only serves Steam metrics
func SteamHandler() http.Handler {
	filtered := NewFilteredGatherer(prometheus.DefaultGatherer, "steam_")
	return promhttp.HandlerFor(filtered, promhttp.HandlerOpts{})
}
