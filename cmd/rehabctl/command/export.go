package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Data exports",
	Long:  "The export command is used to export records, reports and the audit trail",
}

func writeExport(data []byte) error {
	if exportOut == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(exportOut, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", exportOut)
	return nil
}

func init() {
	exportCmd.PersistentFlags().StringVar(&exportOut, "out", "", "Output file (defaults to stdout)")
	rootCmd.AddCommand(exportCmd)
}
