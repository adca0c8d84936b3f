package command

import (
	"testing"

	"github.com/eeglab/adapterprobe/internal/engine"
	"github.com/eeglab/adapterprobe/internal/hwreg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *engine.Engine, *hwreg.RecordingTrigger) {
	t.Helper()

	var cfg, err = engine.New(1000, engine.FixedAdapter800)
	require.NoError(t, err)

	var trig = &hwreg.RecordingTrigger{}
	var regs = hwreg.Registers{Trigger: trig}

	var e, newErr = engine.NewEngine(cfg, []byte("K"), true, regs, 1, 2)
	require.NoError(t, newErr)

	return &Dispatcher{Engine: e, Trigger: trig}, e, trig
}

func TestDispatcher_AcqStartAndStop(t *testing.T) {
	var d, e, _ = newTestDispatcher(t)

	var _, ok, err = d.Handle(Message{ID: AcqStart})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, e.AudioActive())

	_, ok, err = d.Handle(Message{ID: AcqStop})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, e.AudioActive())
}

func TestDispatcher_ResetSynRepliesWithResetAck(t *testing.T) {
	var d, _, _ = newTestDispatcher(t)

	var reply, ok, err = d.Handle(Message{ID: F2BResetSyn})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, B2FResetAck, reply.ID)
}

func TestDispatcher_GetBufSizeAndTotalCount(t *testing.T) {
	var d, _, _ = newTestDispatcher(t)
	d.BufSize = func() int32 { return 4096 }
	d.TotalCount = func() int32 { return 123456 }

	var reply, ok, err = d.Handle(Message{ID: F2BGetBufSize})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, B2FPutBufSize, reply.ID)
	assert.Equal(t, int32(4096), reply.IParam[0])

	reply, ok, err = d.Handle(Message{ID: F2BGetTotal})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, B2FPutTotal, reply.ID)
	assert.Equal(t, int32(123456), reply.IParam[0])
}

func TestDispatcher_TrigTestOnlyWhenStopped(t *testing.T) {
	var d, e, trig = newTestDispatcher(t)

	e.Start()
	var _, _, err = d.Handle(Message{ID: F2BTrigTest, IParam: [4]int32{7}})
	assert.Error(t, err, "trigger test must be rejected while the engine is running")
	assert.Empty(t, trig.Codes)

	e.Stop()
	_, _, err = d.Handle(Message{ID: F2BTrigTest, IParam: [4]int32{7}})
	require.NoError(t, err)
	require.Len(t, trig.Codes, 1)
	assert.Equal(t, 7, trig.Codes[0])
}

func TestDispatcher_UnknownOpcodeErrors(t *testing.T) {
	var d, _, _ = newTestDispatcher(t)
	var _, ok, err = d.Handle(Message{ID: Opcode(0xBEEF)})
	assert.False(t, ok)
	assert.Error(t, err)
}
