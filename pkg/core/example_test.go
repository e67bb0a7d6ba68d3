package core_test

import (
	"context"
	"fmt"
	"os"

	"github.com/leakgate/leakgate/pkg/core"
)

// ExampleScan demonstrates how to perform a simple scan of a directory.
func ExampleScan() {
	cfg := core.Config{
		Root:    ".", // Scan the current directory
		Workers: 4,   // Scan files concurrently
	}

	findings, err := core.Scan(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
		return
	}

	if len(findings) == 0 {
		fmt.Println("No secrets found.")
	} else {
		fmt.Printf("Found %d secrets.\n", len(findings))
		_ = core.MarshalFindings(os.Stdout, findings)
	}
}

// ExampleScanWithStats shows how to run a scan and read the file count.
func ExampleScanWithStats() {
	result, err := core.ScanWithStats(context.Background(), core.Config{Root: "."})
	if err != nil {
		panic(err)
	}
	fmt.Printf("Scanned %d files, found %d secrets (fingerprint %s)\n",
		result.FilesScanned, len(result.Findings), result.Fingerprint())
}
