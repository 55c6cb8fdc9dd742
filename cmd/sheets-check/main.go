// Command sheets-check verifies Google Sheets credentials before the
// mirror worker is deployed: it builds a client from the environment and
// reads the mirror sheet once.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"spendera/internal/cli"
	gsheet "spendera/internal/sheets/google"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}

	rows, err := client.ReadRows(ctx)
	if err != nil {
		logger.Error("Failed to read mirror sheet", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Credentials OK - mirror sheet reachable, %d data rows\n", len(rows))
}
