// Command chunker groups the rows of a spreadsheet by its most telling
// column and prints every row as a JSON array of records.
//
//	chunker [--debug] [--column name] file.xlsx
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"

	"github.com/cognicore/qnorm/internal/logging"
	"github.com/cognicore/qnorm/pkg/chunker"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

func run(args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	fs := flag.NewFlagSet("chunker", flag.ContinueOnError)
	fs.SetOutput(stderr)
	debug := fs.Bool("debug", false, "Log loading and column selection to stderr")
	column := fs.String("column", chunker.StrategyAuto, "Column to group by (auto picks the best scoring column)")
	if err := fs.Parse(args); err != nil {
		return fail(stdout, "Invalid arguments")
	}
	if fs.NArg() == 0 {
		return fail(stdout, "No file path provided")
	}

	opts := logging.OptionsFromEnv(getenv)
	opts.Stderr = stderr
	if *debug {
		opts.Level = "debug"
	}
	logger, err := logging.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "chunker: %v\n", err)
		return 1
	}

	c := chunker.New(logger)
	table, err := c.Load(fs.Arg(0))
	if err != nil {
		logger.WithError(err).Error("load failed")
		return fail(stdout, "Failed to process file")
	}

	chunks, err := c.Chunk(table, *column)
	if err != nil {
		logger.WithError(err).Error("chunking failed")
		return fail(stdout, "Failed to process file")
	}

	data, err := json.Marshal(chunker.Records(chunks))
	if err != nil {
		logger.WithError(err).Error("encode failed")
		return fail(stdout, "Failed to process file")
	}
	fmt.Fprintln(stdout, string(data))
	return 0
}

func fail(w io.Writer, msg string) int {
	data, _ := json.Marshal(map[string]string{"error": msg})
	fmt.Fprintln(w, string(data))
	return 1
}
