package model

// GameIdentity is the immutable tag identifying a game type (e.g. "tictactoe").
// It is shared by every instance of that game; uniqueness checks key on it.
type GameIdentity string

// Phase represents the lifecycle phase of a game session
type Phase string

const (
	PhaseNotStarted Phase = "not_started" // Constructed but never started
	PhaseInProgress Phase = "in_progress" // Accepting moves
	PhaseOver       Phase = "over"        // Terminal; no further mutation
)
