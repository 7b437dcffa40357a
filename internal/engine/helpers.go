package engine

import (
	"fmt"

	"github.com/turkeydev/gamesbot/internal/model"
)

// ResultText is the shared summary line games put in their final render
func ResultText(result model.Result) string {
	switch result.Kind {
	case model.ResultWinner:
		return fmt.Sprintf("%s has won!", result.Name)
	case model.ResultLoser:
		return fmt.Sprintf("%s has lost!", result.Name)
	case model.ResultTie:
		return "It was a tie!"
	case model.ResultForceEnded:
		return "The game was ended!"
	default:
		return ""
	}
}
