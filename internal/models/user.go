package models

// UnknownAuthor is the display name resolved for a dangling author reference.
const UnknownAuthor = "Unknown"

// User represents a registered user. Users are never updated or deleted;
// stories and comments may reference a user id that no longer resolves, in
// which case the display name falls back to UnknownAuthor.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl"`
}
