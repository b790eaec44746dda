package middlewares_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/wise"
	"github.com/junioryono/wise/middlewares"
)

func counterValues(t *testing.T, reg *prometheus.Registry, name string) map[string]float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			values[labelKey(metric)] = metric.GetCounter().GetValue()
		}
	}
	return values
}

func labelKey(metric *dto.Metric) string {
	var key string
	for _, label := range metric.GetLabel() {
		if key != "" {
			key += ","
		}
		key += label.GetName() + "=" + label.GetValue()
	}
	return key
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()

	c := wise.ApplyMiddlewares(wise.NewContainer(), middlewares.Metrics(reg))

	token := wise.NewType[int]("Number")
	c.RegisterProvider(token, wise.UseValue(1))

	_, err := c.Resolve(ctx, token)
	require.NoError(t, err)
	_, err = c.Resolve(ctx, token)
	require.NoError(t, err)
	_, err = c.Resolve(ctx, wise.NewType[int]("Missing"))
	require.Error(t, err)
	_, err = c.ResolveAll(ctx, token)
	require.NoError(t, err)

	var self *wise.Class[int]
	self = wise.NewClass(func(ctx context.Context) (int, error) {
		return wise.Inject[int](ctx, self)
	})
	_, err = c.Resolve(ctx, self)
	require.Error(t, err)

	values := counterValues(t, reg, "wise_resolutions_total")
	assert.Equal(t, 2.0, values["method=Resolve,outcome=success"])
	assert.Equal(t, 1.0, values["method=Resolve,outcome=not_found"])
	assert.Equal(t, 1.0, values["method=ResolveAll,outcome=success"])
	assert.Equal(t, 2.0, values["method=Resolve,outcome=circular"], "both the nested and the root call fail")

	families, err := reg.Gather()
	require.NoError(t, err)

	var histogram *dto.MetricFamily
	for _, family := range families {
		if family.GetName() == "wise_resolution_duration_seconds" {
			histogram = family
		}
	}
	require.NotNil(t, histogram)
	assert.Len(t, histogram.GetMetric(), 2)
}

func TestMetrics_SharedRegistry(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()

	token := wise.NewType[int]("Number")
	for range 2 {
		c := wise.ApplyMiddlewares(wise.NewContainer(), middlewares.Metrics(reg))
		c.RegisterProvider(token, wise.UseValue(1))
		_, err := c.Resolve(ctx, token)
		require.NoError(t, err)
	}

	values := counterValues(t, reg, "wise_resolutions_total")
	assert.Equal(t, 2.0, values["method=Resolve,outcome=success"])
}
