package ws

import (
	"encoding/json"
	"fmt"

	"github.com/coder/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec serializes envelopes and payloads for one wire format.
type Codec interface {
	Name() string
	FrameType() websocket.MessageType
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Encode(msg Message) ([]byte, error)
	Decode(data []byte) (Message, error)
	NewMessage(typ uint8, tick uint32, payload any) (Message, error)
}

var (
	JSON    Codec = jsonCodec{}
	MsgPack Codec = msgpackCodec{}
)

// CodecByName resolves a codec from a query parameter or config value.
// Empty selects JSON.
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSON, nil
	case "msgpack":
		return MsgPack, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}

type jsonEnvelope struct {
	Type    uint8           `json:"type"`
	Tick    uint32          `json:"tick"`
	Payload json.RawMessage `json:"payload"`
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }
func (jsonCodec) FrameType() websocket.MessageType { return websocket.MessageText }
func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Encode(msg Message) ([]byte, error) {
	payload := msg.Payload
	if len(payload) == 0 {
		payload = []byte("null")
	}
	return json.Marshal(jsonEnvelope{Type: msg.Type, Tick: msg.Tick, Payload: payload})
}

func (jsonCodec) Decode(data []byte) (Message, error) {
	var env jsonEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Message{}, err
	}
	return Message{Type: env.Type, Tick: env.Tick, Payload: env.Payload}, nil
}

func (c jsonCodec) NewMessage(typ uint8, tick uint32, payload any) (Message, error) {
	return newMessage(c, typ, tick, payload)
}

type msgpackEnvelope struct {
	Type    uint8              `msgpack:"type"`
	Tick    uint32             `msgpack:"tick"`
	Payload msgpack.RawMessage `msgpack:"payload"`
}

// msgpackCodec sends binary frames; snapshots are roughly half the size of
// their JSON form.
type msgpackCodec struct{}

func (msgpackCodec) Name() string { return "msgpack" }
func (msgpackCodec) FrameType() websocket.MessageType { return websocket.MessageBinary }
func (msgpackCodec) Marshal(v any) ([]byte, error) { return msgpack.Marshal(v) }
func (msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

func (msgpackCodec) Encode(msg Message) ([]byte, error) {
	payload := msg.Payload
	if len(payload) == 0 {
		payload = []byte{0xc0} // nil
	}
	return msgpack.Marshal(&msgpackEnvelope{Type: msg.Type, Tick: msg.Tick, Payload: payload})
}

func (msgpackCodec) Decode(data []byte) (Message, error) {
	var env msgpackEnvelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return Message{}, err
	}
	return Message{Type: env.Type, Tick: env.Tick, Payload: env.Payload}, nil
}

func (c msgpackCodec) NewMessage(typ uint8, tick uint32, payload any) (Message, error) {
	return newMessage(c, typ, tick, payload)
}

func newMessage(c Codec, typ uint8, tick uint32, payload any) (Message, error) {
	data, err := c.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: typ, Tick: tick, Payload: data}, nil
}
