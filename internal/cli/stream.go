package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"constellation/internal/pipeline"
)

var streamCmd = &cobra.Command{
	Use:   "stream <question>",
	Short: "Ask a question and print pipeline progress as it happens",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		question := strings.Join(args, " ")
		if err := streamChat(flagServer+"/chat/stream", question); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
		}
	},
}

func streamChat(url, question string) error {
	body, err := json.Marshal(map[string]string{"message": question})
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("contacting server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		payload, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			continue
		}

		var event pipeline.Event
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			continue
		}

		switch event.Step {
		case pipeline.StepError:
			return fmt.Errorf("pipeline: %s", event.Error)
		case pipeline.StepComplete:
			printResult(event.Result)
			return nil
		default:
			printProgress(&event)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stream: %w", err)
	}
	return fmt.Errorf("stream ended without a result")
}

func printProgress(event *pipeline.Event) {
	label := event.Step
	if event.ReviewerID != "" {
		label = string(event.ReviewerID)
	}

	switch event.Status {
	case pipeline.StatusStarted:
		fmt.Fprintf(os.Stderr, "... %s\n", label)
	case pipeline.StatusComplete:
		if event.Safe != nil {
			verdict := "UNSAFE"
			if *event.Safe {
				verdict = "SAFE"
			}
			fmt.Fprintf(os.Stderr, "    %s: %s\n", label, verdict)
		}
	}
}

// printResult re-decodes the terminal event's result, which arrives as a
// generic JSON object.
func printResult(raw interface{}) {
	encoded, err := json.Marshal(raw)
	if err != nil {
		return
	}
	var result chatResult
	if err := json.Unmarshal(encoded, &result); err != nil {
		return
	}
	fmt.Println(result.FinalResponse)
	if result.WasCorrected {
		fmt.Fprintln(os.Stderr, "(answer was corrected after review)")
	}
}
