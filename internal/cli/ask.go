package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"constellation/internal/httputil"
	"constellation/internal/pipeline"
	"constellation/internal/reviewer"
)

var flagShowReviews bool

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question and wait for the reviewed answer",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		question := strings.Join(args, " ")
		result, err := postChat(flagServer+"/chat", question)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}

		fmt.Println(result.FinalResponse)

		if flagShowReviews {
			fmt.Fprintln(os.Stderr)
			for _, id := range result.ActiveReviewers {
				review, ok := result.Reviews[id]
				if !ok {
					continue
				}
				verdict := "UNSAFE"
				if review.Safe {
					verdict = "SAFE"
				}
				fmt.Fprintf(os.Stderr, "%s: %s - %s\n", review.Name, verdict, review.Reasoning)
			}
			if result.WasCorrected {
				fmt.Fprintln(os.Stderr, "(answer was corrected after review)")
			}
		}
	},
}

func init() {
	askCmd.Flags().BoolVar(&flagShowReviews, "reviews", false, "Print each reviewer's verdict to stderr")
}

func postChat(url, question string) (*chatResult, error) {
	body, err := json.Marshal(map[string]string{"message": question})
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("contacting server: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errBody httputil.ErrorBody
		if json.Unmarshal(raw, &errBody) == nil && errBody.Error != "" {
			return nil, fmt.Errorf("server: %s", errBody.Error)
		}
		return nil, fmt.Errorf("server returned %d", resp.StatusCode)
	}

	var result chatResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decoding result: %w", err)
	}
	return &result, nil
}

// chatResult mirrors the server's pipeline result wire shape.
type chatResult struct {
	Draft           string                                   `json:"draft"`
	Reviews         map[reviewer.ID]pipeline.ReviewSummary   `json:"reviews"`
	ActiveReviewers []reviewer.ID                            `json:"active_reviewers"`
	FinalResponse   string                                   `json:"final_response"`
	WasCorrected    bool                                     `json:"was_corrected"`
}
