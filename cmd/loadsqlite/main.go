package main

import (
	"fmt"
	"os"

	"github.com/darianmavgo/loadsqlite/config"
	"github.com/darianmavgo/loadsqlite/importer"
	_ "github.com/darianmavgo/loadsqlite/importer/all"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  loadsqlite [--config <file.hcl>] [--infer-types] [--verbose] <database.db> <input> [input...]")
	fmt.Println()
	fmt.Println("Loads each input file into the database, one table per input.")
	fmt.Println("Inputs: delimited text (.csv, .tsv, ...), Excel workbooks (.xlsx), HTML tables (.html)")
	os.Exit(1)
}

func main() {
	args := os.Args[1:]

	var (
		configPath string
		inferTypes bool
		verbose    bool
	)

	// Filter out flags
	var cleanArgs []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config":
			if i+1 >= len(args) {
				usage()
			}
			i++
			configPath = args[i]
		case "--infer-types":
			inferTypes = true
		case "--verbose":
			verbose = true
		default:
			cleanArgs = append(cleanArgs, args[i])
		}
	}

	if len(cleanArgs) < 2 {
		usage()
	}

	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if inferTypes {
		cfg.InferTypes = true
	}
	if verbose {
		cfg.Verbose = true
	}

	var delimiter rune
	if cfg.Delimiter != "" {
		runes := []rune(cfg.Delimiter)
		if len(runes) != 1 {
			fmt.Printf("Error: delimiter must be a single character, got %q\n", cfg.Delimiter)
			os.Exit(1)
		}
		delimiter = runes[0]
	}

	dbPath := cleanArgs[0]
	inputs := cleanArgs[1:]

	err := importer.Load(dbPath, inputs, &importer.Options{
		Delimiter:  delimiter,
		InferTypes: cfg.InferTypes,
		Verbose:    cfg.Verbose,
	})
	if err != nil {
		fmt.Printf("Error loading files: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully loaded %d file(s) into %s\n", len(inputs), dbPath)
}
