package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General         Category = "General"
	Rooms           Category = "Rooms"
	Fanout          Category = "Fanout"
	Expiry          Category = "Expiry"
	RabbitMQ        Category = "RabbitMQ"
	Mongo           Category = "Mongo"
	Storage         Category = "Storage"
	RequestResponse Category = "RequestResponse"
	Prometheus      Category = "Prometheus"
)

const (
	// General
	Startup         SubCategory = "Startup"
	Shutdown        SubCategory = "Shutdown"
	ExternalService SubCategory = "ExternalService"

	// Rooms
	Lifecycle  SubCategory = "Lifecycle"
	Membership SubCategory = "Membership"
)

const (
	AppName      ExtraKey = "AppName"
	LoggerName   ExtraKey = "Logger"
	RoomID       ExtraKey = "RoomId"
	ConnID       ExtraKey = "ConnId"
	ClientIp     ExtraKey = "ClientIp"
	Method       ExtraKey = "Method"
	StatusCode   ExtraKey = "StatusCode"
	BodySize     ExtraKey = "BodySize"
	Path         ExtraKey = "Path"
	Latency      ExtraKey = "Latency"
	ErrorMessage ExtraKey = "ErrorMessage"
)
