package model

// ResultKind classifies how a session ended
type ResultKind string

const (
	ResultWinner     ResultKind = "winner"
	ResultTie        ResultKind = "tie"
	ResultLoser      ResultKind = "loser"
	ResultForceEnded ResultKind = "force_ended" // A participant ended it explicitly
	ResultDeleted    ResultKind = "deleted"     // The render surface was removed externally
)

// Result is emitted exactly once per session at termination
type Result struct {
	Kind ResultKind
	// Name is the display name of the winner or loser, when applicable
	Name string
	// Summary is a game-specific final state summary (e.g. the board string
	// or the word that was being guessed)
	Summary string
}
