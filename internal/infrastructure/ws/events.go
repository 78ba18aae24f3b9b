package ws

// Client -> server
const (
	CreateRoom = "create-room"
	JoinRoom   = "join-room"
	Chat       = "chat"
	Typing     = "typing"
)

// Server -> client
const (
	RoomCreated   = "room-created"
	RoomJoined    = "room-joined"
	MessageEvent  = "message"
	UserCount     = "user-count"
	ExpiryWarning = "room-expiry-warning"
	RoomExpired   = "room-expired"
	TypingEvent   = "typing"
	ErrorEvent    = "error"
)
