package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncAndSum(t *testing.T) {
	require.NoError(t, InitMetrics(""))
	t.Cleanup(func() { _ = Close() })

	Inc("store_op_total", Label("op", "product.create"), Label("result", "ok"))
	Inc("store_op_total", Label("op", "product.create"), Label("result", "ok"))
	Inc("store_op_total", Label("op", "product.create"), Label("result", "error"))

	ok, err := Sum("store_op_total", time.Hour, Label("op", "product.create"), Label("result", "ok"))
	require.NoError(t, err)
	assert.Equal(t, float64(2), ok)

	failed, err := Sum("store_op_total", time.Hour, Label("op", "product.create"), Label("result", "error"))
	require.NoError(t, err)
	assert.Equal(t, float64(1), failed)

	none, err := Sum("store_op_total", time.Hour, Label("op", "order_detail.create"), Label("result", "ok"))
	require.NoError(t, err)
	assert.Zero(t, none)
}

func TestNoopBeforeInit(t *testing.T) {
	require.NoError(t, Close())
	Inc("ignored")
	total, err := Sum("ignored", time.Minute)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestInitWithWorkdir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitMetrics(dir))
	SetGauge("orders_open", 3)
	require.NoError(t, Close())
	assert.DirExists(t, dir+"/data/metrics")
}
