package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/motuslabs/rehab/export"
	"github.com/motuslabs/rehab/reports"
	"github.com/motuslabs/rehab/users"
)

var exportReportFlags struct {
	search string
	format string
}

var exportReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export the weekly KPI report",
	Long:  "The report command assembles the weekly KPI report and exports it as CSV or XLSX",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(exportReport) },
}

func exportReport(service reports.Service) error {
	weekly, err := service.Weekly(context.TODO(), reports.RequestContext{
		PatientFilter: exportReportFlags.search,
		CurrentUser:   "rehabctl",
		CurrentRole:   users.RoleManager,
	})
	if err != nil {
		return err
	}

	switch exportReportFlags.format {
	case "csv":
		return writeExport([]byte(weekly.CSV))
	case "xlsx":
		out, err := export.ReportXLSX(weekly.Report)
		if err != nil {
			return err
		}
		return writeExport(out)
	}
	return fmt.Errorf("unknown format %q", exportReportFlags.format)
}

func init() {
	exportReportCmd.Flags().StringVar(&exportReportFlags.search, "search", "", "Filter rows to patient ids containing this value")
	exportReportCmd.Flags().StringVar(&exportReportFlags.format, "format", "csv", "Output format (csv or xlsx)")
	exportCmd.AddCommand(exportReportCmd)
}
