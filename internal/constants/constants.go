package constants

// App state keys.
const (
	LastSeenKey = "last_seen_timestamp"
)

// Time entry source tags.
const (
	SourceSessionConvert = "session_convert"
	SourceTimer          = "timer"
)

// ServiceTaskTitle is the title of the fallback task recreated whenever the
// current one is completed or deleted.
const ServiceTaskTitle = "Service"
