package tool

import "github.com/google/uuid"

// GenerateUUIDV7 returns a time-ordered id; rows keyed by it sort by creation.
func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// GenerateTraceID returns a random id for requests that arrive without X-Request-ID.
func GenerateTraceID() string {
	return uuid.NewString()
}
