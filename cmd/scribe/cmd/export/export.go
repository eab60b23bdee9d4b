package export

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"clinic-scribe/internal/app"
	appexport "clinic-scribe/internal/app/export"
)

var (
	kind           string
	format         string
	limit          int
	outputFilePath string
)

func init() {
	Cmd.Flags().StringVarP(&kind, "kind", "k", "transcripts", "what to export: transcripts or encounters")
	Cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv, json, or xlsx")
	Cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum rows to export (0 for the default cap)")
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")

	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored transcripts or encounter summaries",
	Long: `Export stored transcripts or encounter summaries.

Writes the most recent rows to the given file in csv, json, or xlsx format.`,
	Run: func(cmd *cobra.Command, args []string) {
		dao := app.InitializeDAO()
		defer dao.Close()

		out, err := os.Create(outputFilePath)
		if err != nil {
			log.Fatalf("Failed to create output file: %v\n", err)
		}
		defer out.Close()

		exporter := appexport.NewExporter(dao)
		switch kind {
		case "transcripts":
			err = exporter.Transcripts(format, limit, out)
		case "encounters":
			err = exporter.Encounters(format, limit, out)
		default:
			log.Fatalf("Unknown export kind: %s\n", kind)
		}
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
