package command

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/motuslabs/rehab/audit"
	"github.com/motuslabs/rehab/export"
)

var exportAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Export the audit trail as CSV",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(exportAudit) },
}

func exportAudit(service audit.Service) error {
	list, err := service.List(context.TODO())
	if err != nil {
		return err
	}

	out, err := export.AuditCSV(list)
	if err != nil {
		return err
	}
	return writeExport([]byte(out))
}

func init() {
	exportCmd.AddCommand(exportAuditCmd)
}
