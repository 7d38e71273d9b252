package controller

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI using the cobra command's output streams.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Success prints the confirmation line.
func (s *SimpleUI) Success(msg string) {
	s.cmd.Println(msg)
}

// DisplayFileTable renders the file table as a two-column table.
func (s *SimpleUI) DisplayFileTable(rows []FileRow) error {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Destination", "Source"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, row := range rows {
		table.Append([]string{row.Dest, row.Origin})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Files %d", len(rows)), ""})
	table.Render()

	s.cmd.Printf("\n%s", buf.String())

	return nil
}

// DisplayThemes renders the discovered themes and their inheritance chains.
func (s *SimpleUI) DisplayThemes(rows []ThemeRow) error {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Theme", "Chain"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, row := range rows {
		table.Append([]string{row.Name, strings.Join(row.Chain, " < ")})
	}

	table.Render()

	s.cmd.Printf("\n%s", buf.String())

	return nil
}
