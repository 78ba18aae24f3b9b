package contracts

// AmqpMessage is the message structure for AMQP.
type AmqpMessage struct {
	RoomID string `json:"roomId"`
	Data   []byte `json:"data"`
}

// Routing keys for room lifecycle events.
const (
	EventRoomCreated  = "room.created"
	EventRoomExpired  = "room.expired"
	EventRoomDrained  = "room.drained"
	EventMemberJoined = "member.joined"
	EventMemberLeft   = "member.left"
)
