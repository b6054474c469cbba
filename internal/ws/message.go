package ws

// Client -> Server message types
const (
	MsgLaunch uint8 = 0x01
	MsgAim    uint8 = 0x03
	MsgPing   uint8 = 0x04
	MsgReset  uint8 = 0x05
)

// Server -> Client message types
const (
	MsgGameState   uint8 = 0x81
	MsgGameStart   uint8 = 0x82
	MsgSessionOver uint8 = 0x83
	MsgShot        uint8 = 0x84
	MsgAnnounce    uint8 = 0x85
	MsgPong        uint8 = 0x86
	MsgError       uint8 = 0x88
)

// Message is a decoded envelope. Payload stays in the wire format of the
// codec it arrived with; decode it with Codec.Unmarshal.
type Message struct {
	Type    uint8
	Tick    uint32
	Payload []byte
}

type LaunchPayload struct {
	VX float32 `json:"vx" msgpack:"vx"`
	VY float32 `json:"vy" msgpack:"vy"`
}

// AimPayload is a drag vector (release minus press) in canvas units.
type AimPayload struct {
	DX float32 `json:"dx" msgpack:"dx"`
	DY float32 `json:"dy" msgpack:"dy"`
}

type PingPayload struct {
	ClientTime uint64 `json:"clientTime" msgpack:"clientTime"`
}

type PongPayload struct {
	ClientTime uint64 `json:"clientTime" msgpack:"clientTime"`
	ServerTime uint64 `json:"serverTime" msgpack:"serverTime"`
}

type GameStartPayload struct {
	SessionID  string  `json:"sessionId" msgpack:"sessionId"`
	Nickname   string  `json:"nickname" msgpack:"nickname"`
	FieldWidth float32 `json:"fieldWidth" msgpack:"fieldWidth"`
	FloorY     float32 `json:"floorY" msgpack:"floorY"`
	Shots      int     `json:"shots" msgpack:"shots"`
	Seconds    int     `json:"seconds" msgpack:"seconds"`
	TickRate   int     `json:"tickRate" msgpack:"tickRate"`
	BestScore  int     `json:"bestScore" msgpack:"bestScore"`
	BestHolder string  `json:"bestHolder,omitempty" msgpack:"bestHolder,omitempty"`
}

type ShotPayload struct {
	Result string `json:"result" msgpack:"result"`
	Score  int    `json:"score" msgpack:"score"`
}

type AnnouncePayload struct {
	Text       string `json:"text" msgpack:"text"`
	DurationMs int64  `json:"durationMs" msgpack:"durationMs"`
}

type SessionOverPayload struct {
	Reason   string `json:"reason" msgpack:"reason"`
	Score    int    `json:"score" msgpack:"score"`
	Made     int    `json:"made" msgpack:"made"`
	Perfects int    `json:"perfects" msgpack:"perfects"`
	Missed   int    `json:"missed" msgpack:"missed"`
	NewBest  bool   `json:"newBest" msgpack:"newBest"`
}

type ErrorPayload struct {
	Error string `json:"error" msgpack:"error"`
}
