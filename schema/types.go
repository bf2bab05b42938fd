package schema

// UserID identifies a user. It is the host identity hash, so every user
// registered on the same machine shares it.
type UserID string

// ThemeName identifies a console theme.
type ThemeName string

// OverflowPolicy selects how the input line treats text wider than the box.
type OverflowPolicy string

const (
	// OverflowCap rejects input once the visible input width is used up.
	OverflowCap OverflowPolicy = "cap"
	// OverflowAllow keeps accepting input past the visible width.
	OverflowAllow OverflowPolicy = "allow"
)

// Chat is one committed message attributed to a user.
type Chat struct {
	ID       string
	Text     string
	UserID   UserID
	UserName string
}

// User is a registered chat participant.
type User struct {
	Name    string
	ID      UserID
	ChatLog []Chat
}
