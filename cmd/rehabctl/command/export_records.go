package command

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/motuslabs/rehab/export"
	"github.com/motuslabs/rehab/records"
	"github.com/motuslabs/rehab/store"
)

var exportRecordsPatient string

var exportRecordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Export session records as CSV",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(exportRecords) },
}

func exportRecords(service records.Service) error {
	var filter *records.Filter
	if exportRecordsPatient != "" {
		filter = &records.Filter{PatientID: &exportRecordsPatient}
	}

	list, err := service.List(context.TODO(), filter, store.Pagination{})
	if err != nil {
		return err
	}

	out, err := export.RecordsCSV(list)
	if err != nil {
		return err
	}
	return writeExport([]byte(out))
}

func init() {
	exportRecordsCmd.Flags().StringVar(&exportRecordsPatient, "patient", "", "Limit the export to a single patient id")
	exportCmd.AddCommand(exportRecordsCmd)
}
