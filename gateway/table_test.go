package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgelink/lwm2m/config"
)

func testConfig() config.GatewayConfig {
	return config.GatewayConfig{
		MaxDevices:     2,
		InstanceOffset: 100,
		InstanceStride: 10,
	}
}

func TestRegisterAssignsBaseInstances(t *testing.T) {
	tbl := New(testConfig(), nil)

	idxA, err := tbl.Register("aa:bb:cc:dd:ee:01")
	require.NoError(t, err)
	idxB, err := tbl.Register("aa:bb:cc:dd:ee:02")
	require.NoError(t, err)

	baseA, err := tbl.BaseInstance(idxA)
	require.NoError(t, err)
	baseB, err := tbl.BaseInstance(idxB)
	require.NoError(t, err)
	assert.Equal(t, uint16(100), baseA)
	assert.Equal(t, uint16(110), baseB)

	// Re-registering a known device returns its existing index.
	again, err := tbl.Register("aa:bb:cc:dd:ee:01")
	require.NoError(t, err)
	assert.Equal(t, idxA, again)
}

func TestRegisterGeneratesDeviceID(t *testing.T) {
	tbl := New(testConfig(), nil)

	idx, err := tbl.Register("")
	require.NoError(t, err)
	_, err = tbl.BaseInstance(idx)
	assert.NoError(t, err)
}

func TestRegisterFull(t *testing.T) {
	tbl := New(testConfig(), nil)

	_, err := tbl.Register("a")
	require.NoError(t, err)
	_, err = tbl.Register("b")
	require.NoError(t, err)
	_, err = tbl.Register("c")
	assert.ErrorIs(t, err, ErrFull)
}

func TestRemoveInvokesHookBeforeClearing(t *testing.T) {
	tbl := New(testConfig(), nil)

	idx, err := tbl.Register("a")
	require.NoError(t, err)
	require.NoError(t, tbl.SetAttachedData(idx, "bookkeeping"))

	hooked := false
	tbl.SetDeleteHook(func(hookIdx int, attached any) {
		hooked = true
		assert.Equal(t, idx, hookIdx)
		assert.Equal(t, "bookkeeping", attached)

		// The entry must still resolve while the hook runs.
		base, err := tbl.BaseInstance(hookIdx)
		assert.NoError(t, err)
		assert.Equal(t, uint16(100), base)
	})

	require.NoError(t, tbl.Remove("a"))
	require.True(t, hooked)

	// Afterward the entry is gone, attached data included.
	_, err = tbl.BaseInstance(idx)
	assert.ErrorIs(t, err, ErrNoDevice)
	assert.Nil(t, tbl.AttachedData(idx))

	assert.ErrorIs(t, tbl.Remove("a"), ErrNoDevice)
}

func TestIndexReuseStartsClean(t *testing.T) {
	tbl := New(testConfig(), nil)

	idx, err := tbl.Register("a")
	require.NoError(t, err)
	require.NoError(t, tbl.SetAttachedData(idx, "stale"))
	require.NoError(t, tbl.Remove("a"))

	idx2, err := tbl.Register("b")
	require.NoError(t, err)
	assert.Equal(t, idx, idx2)
	assert.Nil(t, tbl.AttachedData(idx2))
}

func TestAttachedDataBounds(t *testing.T) {
	tbl := New(testConfig(), nil)

	assert.Nil(t, tbl.AttachedData(-1))
	assert.Nil(t, tbl.AttachedData(5))
	assert.ErrorIs(t, tbl.SetAttachedData(0, "x"), ErrNoDevice)
}
