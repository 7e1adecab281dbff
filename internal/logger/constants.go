package logger

// Formats accepted by Config.Format
const (
	FormatJSON = "json"
	FormatText = "text"
)

const (
	DefaultServiceName = "pixel-pet"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"
)

// Attribute keys attached to every record
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
