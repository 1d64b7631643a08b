// Command qnorm normalizes the query given as arguments and prints the
// result as JSON.
//
//	qnorm "Can you show me laptop prices?"
//
// Configuration comes from QNORM_* environment variables, optionally set
// in a .env file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"

	"github.com/cognicore/qnorm/internal/logging"
	"github.com/cognicore/qnorm/pkg/qnorm"
	"github.com/cognicore/qnorm/pkg/qnorm/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	_ = godotenv.Load()
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, `usage: qnorm "your query"`)
		return 1
	}
	q := strings.Join(args, " ")

	opts := logging.OptionsFromEnv(getenv)
	opts.Stderr = stderr
	logger, err := logging.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "qnorm: %v\n", err)
		return 1
	}

	proc, err := qnorm.Open(ctx, config.FromEnv(getenv), logger)
	if err != nil {
		logger.WithError(err).Error("setup failed")
		hint := qnorm.NERInstallHint
		res := qnorm.QueryResult{
			OriginalQuery:  q,
			Status:         qnorm.StatusError,
			Message:        err.Error(),
			NERInstallHint: &hint,
		}
		write(stdout, res.Response(), q)
		return 1
	}
	defer proc.Close()

	write(stdout, proc.Process(ctx, q).Response(), q)
	return 0
}

// write prints v as indented JSON, or a fallback error document when v
// cannot be encoded.
func write(w io.Writer, v any, q string) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		data, _ = json.MarshalIndent(map[string]string{
			"error":            "Failed to serialize output",
			"message":          err.Error(),
			"original_query":   q,
			"ner_install_hint": qnorm.NERInstallHint,
		}, "", "  ")
	}
	fmt.Fprintln(w, string(data))
}
