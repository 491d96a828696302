package session

// Preferences is the only client state that survives restarts.
type Preferences struct {
	Language Language `json:"language"`
	Theme    Theme    `json:"theme"`
}
