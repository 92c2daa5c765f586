package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/anders/scenarist/internal/engine"
)

// renderEnvelope writes a tool response. With --json the full envelope
// is marshaled; otherwise the payload text is printed directly and an
// error envelope becomes a command error (non-zero exit).
func renderEnvelope(cmd *cobra.Command, env engine.Envelope) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	if jsonOut {
		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode envelope: %w", err)
		}
		fmt.Fprintln(out, string(data))
		if env.IsError {
			return fmt.Errorf("tool call failed")
		}
		return nil
	}

	if env.IsError {
		return fmt.Errorf("%s", env.Text())
	}
	fmt.Fprintln(out, env.Text())
	return nil
}

// newTable creates a tablewriter with the house style: plain borders
// off, headers untouched.
func newTable(out io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	return table
}
