// backend-go/cmd/wrapped/main.go
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/config"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/ingest"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/wrapped"
	"github.com/andresuchdata/orderwrapped/backend-go/pkg/logger"
)

func newYearFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "year",
		Usage: "Target year to compute stats for (0 picks the most recent year in the data)",
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "wrapped",
		Usage: "Compute order history statistics from export CSV files",
		Commands: []*cli.Command{
			{
				Name:      "compute",
				Usage:     "Compute yearly stats from export CSVs and print them as JSON",
				ArgsUsage: "<csv files...>",
				Flags: []cli.Flag{
					newYearFlag(),
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Indent the JSON output",
					},
					&cli.BoolFlag{
						Name:  "full",
						Usage: "Include the transaction detail alongside the stats",
					},
					&cli.BoolFlag{
						Name:  "summary",
						Usage: "Print a human-readable summary instead of JSON",
					},
				},
				Action: runCompute,
			},
			{
				Name:      "years",
				Usage:     "List the years the export files have activity in",
				ArgsUsage: "<csv files...>",
				Action:    runYears,
			},
			{
				Name:      "yearly",
				Usage:     "Print the per-year spending rollup",
				ArgsUsage: "<csv files...>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Indent the JSON output",
					},
				},
				Action: runYearly,
			},
			{
				Name:      "import",
				Usage:     "Import export CSVs into the order history database",
				ArgsUsage: "<csv files...>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db-url",
						Usage:    "Database connection string",
						Required: true,
						EnvVars:  []string{"DATABASE_URL"},
					},
					&cli.StringFlag{
						Name:    "dataset",
						Usage:   "Dataset ID to import into",
						Value:   "default",
						EnvVars: []string{"WRAPPED_DATASET_ID"},
					},
				},
				Action: runImport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func parsedFiles(c *cli.Context) ([]*domain.ParsedFile, error) {
	if c.Args().Len() == 0 {
		return nil, fmt.Errorf("at least one CSV file is required")
	}

	parser := ingest.NewParser(logger.For("ingest"))
	files := parser.ParseFiles(c.Context, c.Args().Slice())
	if len(files) == 0 {
		return nil, fmt.Errorf("no readable CSV files")
	}
	return files, nil
}

func runCompute(c *cli.Context) error {
	files, err := parsedFiles(c)
	if err != nil {
		return err
	}

	engine := wrapped.NewEngine(logger.For("wrapped"), config.DefaultLimits)

	year := c.Int("year")
	if year == 0 {
		years := engine.AvailableYears(files)
		if len(years) == 0 {
			return fmt.Errorf("no dated rows in input files")
		}
		year = years[0]
	}

	result := engine.ComputeFromFiles(files, year)

	if c.Bool("summary") {
		printSummary(year, result.Stats)
		return nil
	}

	var payload any = result.Stats
	if c.Bool("full") {
		payload = map[string]any{
			"stats":          result.Stats,
			"processed_data": result.ProcessedData,
		}
	}
	return printJSON(payload, c.Bool("pretty"))
}

func printSummary(year int, stats *domain.WrappedStats) {
	fmt.Printf("Wrapped %d\n", year)
	fmt.Printf("  Gross spend:    %s\n", wrapped.FormatCurrency(stats.TotalGrossSpend, stats.PrimaryCurrency))
	fmt.Printf("  Refunds:        %s\n", wrapped.FormatCurrency(stats.TotalRefunds, stats.PrimaryCurrency))
	fmt.Printf("  Net spend:      %s\n", wrapped.FormatCurrency(stats.NetSpend, stats.PrimaryCurrency))
	fmt.Printf("  Orders:         %s (%s items)\n", wrapped.FormatNumber(float64(stats.TotalOrders)), wrapped.FormatNumber(float64(stats.TotalItems)))
	fmt.Printf("  Peak month:     %s (%s)\n", stats.PeakMonth.Month, wrapped.FormatCurrency(stats.PeakMonth.Amount, stats.PrimaryCurrency))
	fmt.Printf("  Favorite day:   %s\n", stats.FavoriteDay.Day)
	fmt.Printf("  Books:          %s\n", wrapped.FormatNumber(float64(stats.BookCount)))
	fmt.Printf("  Return rate:    %s\n", wrapped.FormatPercent(stats.ReturnRate))
	if stats.HasMixedCurrencies {
		fmt.Printf("  Currencies:     %d (totals in %s)\n", len(stats.CurrencyBreakdown), stats.PrimaryCurrency)
	}
}

func runYears(c *cli.Context) error {
	files, err := parsedFiles(c)
	if err != nil {
		return err
	}

	engine := wrapped.NewEngine(logger.For("wrapped"), config.DefaultLimits)
	for _, year := range engine.AvailableYears(files) {
		fmt.Println(year)
	}
	return nil
}

func runYearly(c *cli.Context) error {
	files, err := parsedFiles(c)
	if err != nil {
		return err
	}

	orders, _ := wrapped.NormalizeFiles(files)
	return printJSON(wrapped.YearlyDataFromOrders(orders), c.Bool("pretty"))
}

func printJSON(v any, pretty bool) error {
	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
