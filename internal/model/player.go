package model

// PlayerRef is an opaque user identifier plus display name
type PlayerRef struct {
	ID   UserID
	Name string
}
