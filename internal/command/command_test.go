package command

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_WriteReadRoundTrip(t *testing.T) {
	var msg = Message{ID: F2BGetBufSize, IParam: [4]int32{1, -2, 3, -4}}

	var buf bytes.Buffer
	require.NoError(t, msg.Write(&buf, binary.BigEndian))
	assert.Equal(t, 2+4*4, buf.Len())

	var got, err = Read(&buf, binary.BigEndian)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}

func TestNewAlert_CarriesKindInIParam0(t *testing.T) {
	var msg = NewAlert(AlertDataLoss)
	assert.Equal(t, AcqAlert, msg.ID)
	assert.Equal(t, int32(AlertDataLoss), msg.IParam[0])
}

func TestRead_ShortBufferErrors(t *testing.T) {
	var _, err = Read(bytes.NewReader([]byte{0x00}), binary.BigEndian)
	assert.Error(t, err)
}
