// pkg/middleware/auth/types.go
package auth

type Role struct {
	Name string `json:"name"`
}

type User struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type ctxKey struct{}
