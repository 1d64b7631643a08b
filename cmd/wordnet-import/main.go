// Command wordnet-import loads a WordNet dictionary directory (data.*,
// index.sense and *.exc files) into the sqlite lexical database used by
// qnorm.
//
//	wordnet-import -dict /usr/share/wordnet/dict -db wordnet.db
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cognicore/qnorm/pkg/qnorm/store/sqlite"
	"github.com/cognicore/qnorm/pkg/qnorm/wordnet"
)

func main() {
	var (
		dictDir   = flag.String("dict", "", "WordNet dict directory (empty imports the embedded starter dictionary)")
		dbPath    = flag.String("db", "", "SQLite database path (required)")
		statsOnly = flag.Bool("stats", false, "Print database statistics without importing")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}

	ctx := context.Background()

	st, err := sqlite.OpenSQLite(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer st.Close()

	if !*statsOnly {
		fsys := wordnet.Embedded()
		if *dictDir != "" {
			fsys = os.DirFS(*dictDir)
		}

		dataset, err := wordnet.Parse(fsys)
		if err != nil {
			log.Fatalf("parse dictionary: %v", err)
		}
		if err := st.Import(ctx, dataset); err != nil {
			log.Fatalf("import: %v", err)
		}
	}

	stats, err := st.Stats(ctx)
	if err != nil {
		log.Fatalf("stats: %v", err)
	}
	fmt.Printf("synsets: %d\nlemmas: %d\nsenses: %d\nexceptions: %d\n",
		stats.Synsets, stats.Lemmas, stats.Senses, stats.Exceptions)
}
