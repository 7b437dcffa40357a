package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/turkeydev/gamesbot/internal/engine"
)

// newStatusCmd creates the status subcommand, which queries the status API
// of a running bot.
func newStatusCmd() *cobra.Command {
	var serverURL string

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the active sessions of a running bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: 10 * time.Second}

			var resp struct {
				Sessions []engine.Info `json:"sessions"`
			}
			if err := getJSON(client, strings.TrimSuffix(serverURL, "/")+"/api/v1/sessions", &resp); err != nil {
				return err
			}

			if len(resp.Sessions) == 0 {
				cmd.Println("No active sessions")
				return nil
			}

			for _, info := range resp.Sessions {
				opponent := "CPU"
				if info.Opponent != "" {
					opponent = info.Opponent
				}
				cmd.Printf("%s guild=%s %s vs %s started=%s\n",
					info.Game, info.Guild, info.Starter, opponent,
					info.StartedAt.Format(time.RFC3339))
			}
			return nil
		},
	}

	statusCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "Status API base URL")

	return statusCmd
}

func getJSON(client *http.Client, url string, result any) error {
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
