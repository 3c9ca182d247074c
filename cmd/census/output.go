package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/census/internal/core"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// printJSON writes v to stdout, indented.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// openInput opens a file that is read without going through a load.
func (a *app) openInput(path string) (*os.File, error) {
	if a.cfg.Input.RequireCSVExt && !strings.EqualFold(filepath.Ext(path), ".csv") {
		return nil, &core.Error{Kind: core.KindFileAccess, Op: "open", Path: path, Message: "not a .csv file"}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &core.Error{Kind: core.KindFileAccess, Op: "open", Path: path, Err: err}
	}
	return f, nil
}
