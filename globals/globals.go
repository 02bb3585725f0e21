package globals

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"

// JwtSecret signs the dev-stub tokens. Not a production credential.
var JwtSecret = []byte("rentiva-dev-secret")
