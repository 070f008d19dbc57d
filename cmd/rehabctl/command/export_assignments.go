package command

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/motuslabs/rehab/assignments"
	"github.com/motuslabs/rehab/export"
)

var exportAssignmentsCmd = &cobra.Command{
	Use:   "assignments",
	Short: "Export patient to doctor assignments as CSV",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(exportAssignments) },
}

func exportAssignments(service assignments.Service) error {
	list, err := service.List(context.TODO())
	if err != nil {
		return err
	}

	out, err := export.AssignmentsCSV(list)
	if err != nil {
		return err
	}
	return writeExport([]byte(out))
}

func init() {
	exportCmd.AddCommand(exportAssignmentsCmd)
}
