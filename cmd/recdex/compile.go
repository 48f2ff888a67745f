package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/recdex/internal/domain/search/request"
	chiTransport "github.com/kailas-cloud/recdex/internal/transport/chi"
	searchuc "github.com/kailas-cloud/recdex/internal/usecase/search"
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a search request into an index query",
	Long: `Reads a search request body (the JSON accepted by POST /records/search)
from file or stdin and prints the index query it compiles to. No allow-list
is attached.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	var body chiTransport.SearchRequest
	if err := json.Unmarshal(data, &body); err != nil {
		return fmt.Errorf("decode search request: %w", err)
	}
	req, err := body.ToRequest(request.Limits{})
	if err != nil {
		return err
	}

	q := searchuc.Compile(&req)
	out, err := json.MarshalIndent(&q, "", "  ")
	if err != nil {
		return fmt.Errorf("encode query: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

// readInput reads the file named by args[0], or stdin when no file or "-" is given.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, nil
}
