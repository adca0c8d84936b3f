// Package command implements the front-end<->back-end command channel
// of §6: a fixed-layout message carrying a 16-bit opcode and four
// signed 32-bit parameters, framed with encoding/binary the same way
// the teacher's agwpe.go frames its own packet header.
package command

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Opcode is the 16-bit command/reply identifier.
type Opcode uint16

const (
	AcqStart      Opcode = 0x0001
	AcqStop       Opcode = 0x0002
	AcqCmdF2B     Opcode = 0x0003
	AcqCmdB2F     Opcode = 0x0004
	AcqAlert      Opcode = 0x0005
	B2FDataSyn    Opcode = 0x1001
	F2BDataAck    Opcode = 0x1002
	F2BResetSyn   Opcode = 0x1003
	B2FResetAck   Opcode = 0x1004
	F2BGetBufSize Opcode = 0x1005
	B2FPutBufSize Opcode = 0x1006
	F2BGetTotal   Opcode = 0x1007
	B2FPutTotal   Opcode = 0x1008
	F2BTrigTest   Opcode = 0x1009
)

// AlertKind is the value carried in iparam[0] of an AcqAlert message.
type AlertKind int32

// AlertDataLoss reports that the front-end is consuming samples too
// slowly and a buffer underrun is at risk.
const AlertDataLoss AlertKind = 0x0001

// Message is the wire layout for one command/reply: a 16-bit opcode
// followed by four signed 32-bit parameters, in that order, no
// padding.
type Message struct {
	ID     Opcode
	IParam [4]int32
}

// wireMessage is the byte-exact struct handed to encoding/binary; it
// exists only so Message.ID's named Opcode type doesn't need its own
// binary.Write special case.
type wireMessage struct {
	ID     uint16
	IParam [4]int32
}

// Write serializes msg to w in the given byte order. Mirrors the
// teacher's AGWPEMessage.Write: a fixed header, no variable-length
// tail to worry about here since iparam is always four words.
func (msg Message) Write(w io.Writer, order binary.ByteOrder) error {
	return binary.Write(w, order, wireMessage{ID: uint16(msg.ID), IParam: msg.IParam})
}

// Read deserializes one Message from r in the given byte order.
func Read(r io.Reader, order binary.ByteOrder) (Message, error) {
	var wm wireMessage
	if err := binary.Read(r, order, &wm); err != nil {
		return Message{}, fmt.Errorf("command: read message: %w", err)
	}
	return Message{ID: Opcode(wm.ID), IParam: wm.IParam}, nil
}

// NewAlert builds an AcqAlert message for the given alert kind.
func NewAlert(kind AlertKind) Message {
	return Message{ID: AcqAlert, IParam: [4]int32{int32(kind)}}
}
