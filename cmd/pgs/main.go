// Command pgs runs one analysis from the command line and prints the
// report as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/genelingua/pgs-server/internal/domain"
	"github.com/genelingua/pgs-server/internal/engine"
)

func main() {
	var (
		file     = flag.String("file", "", "path to the raw genotype file (.txt or .zip)")
		ancestry = flag.String("ancestry", string(domain.EUR), "ancestry code (EUR, EAS, SAS, AFR, AMR, MENA, OTH)")
		out      = flag.String("out", "", "write the report to this path instead of stdout")
		pretty   = flag.Bool("pretty", true, "indent the JSON output")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: pgs -file genome.txt [-ancestry EUR] [-out report.json]")
		os.Exit(2)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	eng := engine.New(logger)
	report, err := eng.GenerateReport(*file, domain.Ancestry(*ancestry))
	if err != nil {
		fmt.Fprintf(os.Stderr, "pgs: %v\n", err)
		os.Exit(1)
	}

	var payload []byte
	if *pretty {
		payload, err = json.MarshalIndent(report, "", "  ")
	} else {
		payload, err = json.Marshal(report)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "pgs: %v\n", err)
		os.Exit(1)
	}
	payload = append(payload, '\n')

	if *out == "" {
		os.Stdout.Write(payload)
		return
	}
	if err := os.WriteFile(*out, payload, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "pgs: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "report written to %s\n", *out)
}
