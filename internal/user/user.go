package user

// User represents a user registered to the service.
// The ID equals the subject claim issued by the OIDC provider.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}
