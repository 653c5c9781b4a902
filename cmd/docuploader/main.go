// Package main is the docuploader CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Aru010197/document-search/internal/cli"
	"github.com/Aru010197/document-search/internal/config"
	"github.com/Aru010197/document-search/internal/fetch"
	"github.com/Aru010197/document-search/internal/ingest"
	"github.com/Aru010197/document-search/internal/pipeline"
	"github.com/Aru010197/document-search/internal/resolver"
	"github.com/Aru010197/document-search/internal/source"
	"github.com/Aru010197/document-search/internal/supabase"
	"github.com/Aru010197/document-search/pkg/utils"
)

var version = "dev"

const (
	defaultConfigPath = "docuploader.yaml"
	defaultEnvFile    = ".env.local"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "upload":
		runUpload()
	case "resolve":
		runResolve()
	case "version", "--version", "-v":
		fmt.Printf("docuploader version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// outputFormatFromFlag maps the --output flag value to a cli.OutputFormat.
func outputFormatFromFlag(value string) (cli.OutputFormat, error) {
	switch value {
	case "text":
		return cli.OutputText, nil
	case "json":
		return cli.OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", value)
	}
}

func runUpload() {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	excelFile := fs.String("excel-file", "", "path to the Excel file containing document links (required)")
	column := fs.String("column", "", "column name containing document links (required)")
	sheet := fs.String("sheet", "0", "sheet name or 0-based index")
	nameColumn := fs.String("name-column", "", "column name containing document names (optional)")
	typeColumn := fs.String("type-column", "", "column name containing document types (optional)")
	authorColumn := fs.String("author-column", "", "column name containing document authors (optional)")
	dateColumn := fs.String("date-column", "", "column name containing document dates (optional)")
	configPath := fs.String("config", defaultConfigPath, "config file path")
	envFile := fs.String("env-file", defaultEnvFile, "env file holding the Supabase credentials")
	outputFormat := fs.String("output", "text", "summary format: text or json")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	if *excelFile == "" || *column == "" {
		fmt.Fprintln(os.Stderr, "Usage: docuploader upload --excel-file <path> --column <link-column> [flags]")
		os.Exit(1)
	}
	format, err := outputFormatFromFlag(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if _, err := os.Stat(*excelFile); err != nil {
		fmt.Fprintf(os.Stderr, "Excel file %q not found\n", *excelFile)
		os.Exit(1)
	}
	sheetData, err := source.Read(*excelFile, *sheet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read Excel file: %v\n", err)
		os.Exit(1)
	}

	client := supabase.NewClient(cfg.Credentials.URL, cfg.Credentials.ServiceKey)
	fetcher := fetch.NewFetcher(fetch.WithChunkSize(cfg.Download.ChunkSize))
	ingestor := ingest.NewIngestor(client, cfg.Storage.Bucket, cfg.Catalog.Table, logger)
	pipe := pipeline.NewPipeline(fetcher, ingestor, logger, os.Stdout)

	bindings := source.Bindings{
		Name:   *nameColumn,
		Author: *authorColumn,
		Date:   *dateColumn,
		Type:   *typeColumn,
	}
	summary, err := pipe.Run(context.Background(), sheetData, *column, bindings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Upload failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSummary(os.Stdout, summary, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runResolve() {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() < 1 {
		fmt.Println("Usage: docuploader resolve <url> [url ...]")
		os.Exit(1)
	}
	for _, raw := range fs.Args() {
		fmt.Println(resolver.Resolve(raw))
	}
}

func printUsage() {
	fmt.Println(`docuploader - upload documents from an Excel link sheet to Supabase

Usage:
  docuploader upload [flags]      Download every linked document and upload it
  docuploader resolve <url>...    Print the direct-download form of sharing links
  docuploader version             Show version
  docuploader help                Show this help

Upload Flags:
  --excel-file string      Path to the Excel file containing document links (required)
  --column string          Column name containing document links (required)
  --sheet string           Sheet name or 0-based index (default: 0)
  --name-column string     Column name containing document names (optional)
  --type-column string     Column name containing document types (optional)
  --author-column string   Column name containing document authors (optional)
  --date-column string     Column name containing document dates (optional)
  --config string          Config file path (default: docuploader.yaml)
  --env-file string        Env file holding the Supabase credentials (default: .env.local)
  --output string          Summary format: text or json (default: text)
  --debug                  Enable debug logging

Credentials are read from NEXT_PUBLIC_SUPABASE_URL and
SUPABASE_SERVICE_ROLE_KEY, loaded from the env file when present.

Examples:
  docuploader upload --excel-file links.xlsx --column "Document Link"
  docuploader upload --excel-file links.xlsx --column URL --sheet Reports \
      --name-column Title --author-column Author --date-column Published
  docuploader resolve "https://drive.google.com/file/d/abc123/view"`)
}
