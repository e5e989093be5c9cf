package session

import "context"

// Durable keys. They are always written together and removed together.
const (
	KeyAuthToken = "authToken"
	KeyUserData  = "userData"
)

// Store is the durable key/value storage behind a Manager.
type Store interface {
	Load(ctx context.Context) (map[string]string, error)
	Put(ctx context.Context, values map[string]string) error
	Remove(ctx context.Context, keys ...string) error
}
