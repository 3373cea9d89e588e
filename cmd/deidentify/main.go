package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"dicom-deid/internal/cli"
	"dicom-deid/internal/deid"
)

func main() {
	input := flag.String("input", "", "Input folder containing DICOM files")
	inputShort := flag.String("i", "", "Input folder (shorthand)")

	output := flag.String("output", "", "Output folder (default: {input}/anonymized)")
	outputShort := flag.String("o", "", "Output folder (shorthand)")

	scriptFile := flag.String("script", "", "De-identification script file (default: built-in script)")
	scriptShort := flag.String("s", "", "Script file (shorthand)")

	key := flag.String("key", "", "Secret key for pseudonymization")
	keyShort := flag.String("k", "", "Secret key (shorthand)")

	mapping := flag.String("mapping", "", "Patient mapping file path")
	mappingShort := flag.String("m", "", "Mapping file (shorthand)")

	configFile := flag.String("config", "", "TOML config file path")

	pixelCheck := flag.Bool("pixel-check", false, "Run OCR over pixel data to flag burned-in text")
	profile := flag.Bool("profile", false, "Record pre-anonymization confidentiality-profile values")

	recursive := flag.Bool("recursive", true, "Search subdirectories")
	recursiveShort := flag.Bool("r", true, "Recursive (shorthand)")

	retry := flag.Bool("retry", false, "Retry previously failed files")

	validate := flag.String("validate", "", "Validate a script file and exit")

	dryRun := flag.Bool("dry-run", false, "Preview only, no files modified")
	dryRunShort := flag.Bool("n", false, "Dry run (shorthand)")

	help := flag.Bool("help", false, "Show help message")
	helpShort := flag.Bool("h", false, "Help (shorthand)")

	flag.Usage = printUsage
	flag.Parse()

	if *help || *helpShort {
		printUsage()
		return
	}

	if *validate != "" {
		if err := validateScript(*validate); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Merge short and long flags (prefer long if both specified)
	inputFolder := *input
	if inputFolder == "" {
		inputFolder = *inputShort
	}
	outputFolder := *output
	if outputFolder == "" {
		outputFolder = *outputShort
	}
	scriptPath := *scriptFile
	if scriptPath == "" {
		scriptPath = *scriptShort
	}
	secretKey := *key
	if secretKey == "" {
		secretKey = *keyShort
	}
	mappingFile := *mapping
	if mappingFile == "" {
		mappingFile = *mappingShort
	}
	isRecursive := *recursive
	if !*recursiveShort {
		isRecursive = false
	}

	if inputFolder == "" {
		printUsage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := cli.Options{
		InputFolder:    inputFolder,
		OutputFolder:   outputFolder,
		ConfigFile:     *configFile,
		ScriptFile:     scriptPath,
		SecretKey:      secretKey,
		MappingFile:    mappingFile,
		PixelCheck:     *pixelCheck,
		ExtractProfile: *profile,
		Recursive:      isRecursive,
		RetryFailed:    *retry,
		DryRun:         *dryRun || *dryRunShort,
	}

	if err := cli.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func validateScript(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read script: %w", err)
	}
	if v := deid.ValidateScript(string(data)); !v.Valid {
		return fmt.Errorf("invalid script: %s", v.Error)
	}
	fmt.Println("Script is valid")
	return nil
}

func printUsage() {
	fmt.Println(`DICOM De-identifier - Command Line Interface

USAGE:
  deidentify -i <path> [flags]

The secret key (-k) keeps patient pseudonyms consistent: with the same key,
the same patient gets the same anonymous ID (e.g. ANON-000001) across runs
and modalities. If not provided, a key is generated and displayed - save it.

FLAGS:
  -i, --input <path>     Input folder containing DICOM files (required)
  -o, --output <path>    Output folder (default: {input}/anonymized)
  -s, --script <path>    De-identification script (default: built-in script)
  -k, --key <key>        Secret key for pseudonymization
  -m, --mapping <path>   Patient mapping file (default: {parent}/patient_mapping.json)
      --config <path>    TOML config file
      --pixel-check      OCR the pixel data to flag burned-in text
      --profile          Record pre-anonymization identifying values
  -r, --recursive        Search subdirectories (default: true)
      --retry            Retry previously failed files
      --validate <path>  Validate a script file and exit
  -n, --dry-run          Preview what would be processed
  -h, --help             Show this help message

SCRIPT FORMAT:
  One directive per line:
    (0008,0080) := ""          clear a tag
    (0010,0010) := "ANONYMOUS" assign a value (rewritten per patient)
    - (0010,4000)              remove a tag
    // comment

OUTPUT:
  Anonymized files: {output}/<relative path>
  Audit manifest:   {output}/manifest.json
  Mapping file:     {parent}/patient_mapping.json (or custom with -m)

SECURITY - KEEP THESE SECRET:
  1. Secret Key    - required to keep pseudonyms consistent.
  2. Mapping File  - anyone with this file can re-identify patients.

  Only share the anonymized files and the manifest.`)
}
