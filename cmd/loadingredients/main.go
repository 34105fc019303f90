package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/foodgram/foodgram-backend/internal/app"
	"github.com/foodgram/foodgram-backend/internal/data/ingest"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s <fixture.json|fixture.csv> [more files...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		application.Close(ctx)
	}()

	loader := ingest.NewLoader(application.Log, application.Repos.Ingredient)
	ctx := context.Background()

	var total int64
	for _, path := range flag.Args() {
		f, err := os.Open(path)
		if err != nil {
			fmt.Printf("open %s: %v\n", path, err)
			os.Exit(1)
		}
		n, err := loader.LoadFile(ctx, path, f)
		f.Close()
		if err != nil {
			fmt.Printf("load %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("%s: inserted %d rows\n", path, n)
		total += n
	}
	fmt.Printf("done; inserted=%d\n", total)
}
