package globals

import (
	"context"
	"os"
)

// AdminActor is the fixed actor identifier for the admin role. It appears as
// the recipient of order notifications and as an endpoint of chat messages;
// patient actors are identified by their user id.
const AdminActor = "admin"

var JwtSecret = []byte(envOr("JWT_SECRET", "change_me_in_production"))

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const UserIDKey ContextKey = "userId"

var Ctx = context.Background()

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
