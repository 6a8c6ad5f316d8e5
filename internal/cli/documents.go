package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"constellation/internal/retrieval"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage the reference document corpus",
}

var docsAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Upload a file as a reference document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		content, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}

		req := retrieval.AddDocumentRequest{
			Filename: filepath.Base(args[0]),
			Content:  string(content),
		}
		body, err := json.Marshal(req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}

		resp, err := http.Post(flagServer+"/api/documents", "application/json", bytes.NewReader(body))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		defer resp.Body.Close()

		raw, _ := io.ReadAll(resp.Body)
		var result retrieval.AddDocumentResult
		if err := json.Unmarshal(raw, &result); err != nil || resp.StatusCode >= 400 {
			fmt.Fprintf(os.Stderr, "Error: server returned %d: %s\n", resp.StatusCode, raw)
			exitCode = ExitRuntimeError
			return
		}

		if result.AlreadyExists {
			fmt.Printf("%s already stored as %s\n", req.Filename, result.DocID)
			return
		}
		fmt.Printf("%s stored as %s (%d chunks)\n", req.Filename, result.DocID, result.Chunks)
	},
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reference documents",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := http.Get(flagServer + "/api/documents")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		defer resp.Body.Close()

		var listing struct {
			Documents []retrieval.Document `json:"documents"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}

		if len(listing.Documents) == 0 {
			fmt.Println("no documents stored")
			return
		}
		for _, doc := range listing.Documents {
			fmt.Printf("%s  %s (%s, %d chunks)\n", doc.ID, doc.Filename, doc.DocType, doc.Chunks)
		}
	},
}

func init() {
	docsCmd.AddCommand(docsAddCmd)
	docsCmd.AddCommand(docsListCmd)
}
