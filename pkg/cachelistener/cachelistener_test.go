package cachelistener_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resctx/resctx-runtime/pkg/cachelistener"
	"github.com/resctx/resctx-runtime/pkg/ids"
)

func TestCounters_TracksPerKindTotals(t *testing.T) {
	c := cachelistener.NewCounters()
	c.OnHit(ids.KindCondition)
	c.OnHit(ids.KindCondition)
	c.OnMiss(ids.KindDecision)
	c.OnError(ids.KindConditionSet, errors.New("boom"))
	c.OnClear()
	c.OnContextError(errors.New("bad context"))

	snap := c.Snapshot()
	assert.EqualValues(t, 2, snap.Hits[ids.KindCondition])
	assert.EqualValues(t, 1, snap.Misses[ids.KindDecision])
	assert.EqualValues(t, 1, snap.Errors[ids.KindConditionSet])
	assert.EqualValues(t, 1, snap.Clears)
	assert.EqualValues(t, 1, snap.ContextErrors)
}

func TestMulti_FansOutToAllListeners(t *testing.T) {
	a := cachelistener.NewCounters()
	b := cachelistener.NewCounters()
	m := cachelistener.Multi(a, b)

	m.OnHit(ids.KindDecision)

	assert.EqualValues(t, 1, a.Snapshot().Hits[ids.KindDecision])
	assert.EqualValues(t, 1, b.Snapshot().Hits[ids.KindDecision])
}

func TestPrometheusListener_RegistersAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	l := cachelistener.NewPrometheusListener(reg)

	l.OnHit(ids.KindCondition)
	l.OnMiss(ids.KindDecision)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}
