package ws

import (
	"bytes"
	"testing"

	"github.com/coder/websocket"
)

func TestCodecByName(t *testing.T) {
	cases := []struct {
		name string
		want Codec
	}{
		{"", JSON},
		{"json", JSON},
		{"msgpack", MsgPack},
	}
	for _, tc := range cases {
		got, err := CodecByName(tc.name)
		if err != nil || got != tc.want {
			t.Errorf("CodecByName(%q) = %v, %v", tc.name, got, err)
		}
	}
	if _, err := CodecByName("xml"); err == nil {
		t.Error("CodecByName accepted an unknown codec")
	}
}

func TestEnvelopeCarriesPayload(t *testing.T) {
	for _, c := range []Codec{JSON, MsgPack} {
		msg, err := c.NewMessage(MsgAim, 77, AimPayload{DX: -12.5, DY: 30})
		if err != nil {
			t.Fatalf("%s: NewMessage: %v", c.Name(), err)
		}
		data, err := c.Encode(msg)
		if err != nil {
			t.Fatalf("%s: Encode: %v", c.Name(), err)
		}
		got, err := c.Decode(data)
		if err != nil {
			t.Fatalf("%s: Decode: %v", c.Name(), err)
		}
		if got.Type != MsgAim || got.Tick != 77 {
			t.Fatalf("%s: envelope = %+v", c.Name(), got)
		}
		var p AimPayload
		if err := c.Unmarshal(got.Payload, &p); err != nil {
			t.Fatalf("%s: Unmarshal: %v", c.Name(), err)
		}
		if p.DX != -12.5 || p.DY != 30 {
			t.Fatalf("%s: payload = %+v", c.Name(), p)
		}
	}
}

func TestEmptyPayloadEncodes(t *testing.T) {
	for _, c := range []Codec{JSON, MsgPack} {
		data, err := c.Encode(Message{Type: MsgReset})
		if err != nil {
			t.Fatalf("%s: Encode: %v", c.Name(), err)
		}
		got, err := c.Decode(data)
		if err != nil || got.Type != MsgReset {
			t.Fatalf("%s: Decode = %+v, %v", c.Name(), got, err)
		}
	}
}

func TestFrameTypes(t *testing.T) {
	if JSON.FrameType() != websocket.MessageText || MsgPack.FrameType() != websocket.MessageBinary {
		t.Fatal("unexpected frame types")
	}
	msg, _ := MsgPack.NewMessage(MsgShot, 1, ShotPayload{Result: "perfect", Score: 4})
	mp, _ := MsgPack.Encode(msg)
	msg, _ = JSON.NewMessage(MsgShot, 1, ShotPayload{Result: "perfect", Score: 4})
	js, _ := JSON.Encode(msg)
	if len(mp) >= len(js) {
		t.Errorf("msgpack frame %d bytes, json %d", len(mp), len(js))
	}
	if bytes.HasPrefix(mp, []byte("{")) {
		t.Error("msgpack frame looks like JSON")
	}
}

func TestSanitizeNickname(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", "Player"},
		{"a", "Player"},
		{"hoop_star", "hoop_star"},
		{"<script>x</script>", "scriptxscrip"},
		{"averyveryverylongname", "averyveryver"},
		{"\xff\xfe", "Player"},
		{"  ab  ", "ab"},
		{"Мяч", "Мяч"},
	}
	for _, tc := range cases {
		if got := sanitizeNickname(tc.in); got != tc.want {
			t.Errorf("sanitizeNickname(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
