package cli

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dicom-deid/internal/config"
	"dicom-deid/internal/deid"
	dcm "dicom-deid/internal/dicom"
	"dicom-deid/internal/identity"
	"dicom-deid/internal/pixeltext"
	"dicom-deid/internal/progress"
	"dicom-deid/internal/script"
)

// Options holds CLI configuration options.
type Options struct {
	InputFolder    string
	OutputFolder   string
	ConfigFile     string
	ScriptFile     string
	SecretKey      string
	MappingFile    string
	PixelCheck     bool
	ExtractProfile bool
	Recursive      bool
	RetryFailed    bool
	DryRun         bool
}

// Run executes the CLI anonymization process.
func Run(ctx context.Context, opts Options) error {
	if opts.InputFolder == "" {
		return fmt.Errorf("input folder is required")
	}
	info, err := os.Stat(opts.InputFolder)
	if err != nil {
		return fmt.Errorf("input folder does not exist: %s", opts.InputFolder)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path is not a directory: %s", opts.InputFolder)
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return err
	}

	outputFolder := opts.OutputFolder
	if outputFolder == "" {
		outputFolder = cfg.Output.Dir
	}
	if outputFolder == "" {
		outputFolder = filepath.Join(opts.InputFolder, "anonymized")
	}

	if opts.MappingFile == "" {
		opts.MappingFile = filepath.Join(filepath.Dir(opts.InputFolder), "patient_mapping.json")
	}

	keyGenerated := false
	if opts.SecretKey == "" {
		opts.SecretKey = GenerateSecretKey()
		keyGenerated = true
	}

	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	engine := deid.NewEngine(logger)
	detector := pixeltext.NewDetector(pixeltext.NewTesseractWorker, logger)
	detector.Language = cfg.OCR.Language
	detector.MinConfidence = cfg.OCR.MinConfidence
	engine.PixelCheck = detector

	scriptText, err := loadScript(opts.ScriptFile, cfg)
	if err != nil {
		return err
	}
	// Validate through the engine's own rule-engine factory, so the
	// pre-check exercises the exact construction path the batch will use.
	if v := engine.ValidateScript(scriptText); !v.Valid {
		return fmt.Errorf("invalid script: %s", v.Error)
	}
	// The CLI always pseudonymizes, so make sure the script carries the
	// placeholder lines the per-patient substitution rewrites.
	scriptText = script.WithIdentityPlaceholders(scriptText)

	files, err := dcm.FindFiles(opts.InputFolder, opts.Recursive)
	if err != nil {
		return fmt.Errorf("could not find DICOM files: %w", err)
	}
	if len(files) == 0 {
		fmt.Printf("No DICOM files found in %s\n", opts.InputFolder)
		return nil
	}

	printHeader(opts, outputFolder, keyGenerated, len(files))

	if opts.DryRun {
		return dryRun(files)
	}

	mapper := identity.NewMapper(opts.MappingFile, opts.SecretKey)

	ledger := progress.Open(filepath.Join(outputFolder, ".progress.json"))
	if opts.RetryFailed {
		if n := ledger.ClearFailures(); n > 0 {
			fmt.Printf("Cleared %d failed entries for retry\n", n)
		}
	}

	manifest := &deid.Manifest{
		ID:        uuid.NewString(),
		Timestamp: time.Now().Format(time.RFC3339),
	}

	pb := newProgressBar(50)
	succeeded, failed, skipped := 0, 0, 0

	for i, filePath := range files {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("cancelled after %d of %d files: %w", i, len(files), err)
		}
		pb.update(i+1, len(files))

		if ledger.Done(filePath) {
			skipped++
			continue
		}

		data, err := os.ReadFile(filePath)
		if err != nil {
			failed++
			ledger.MarkFailure(filePath, err.Error())
			continue
		}

		relPath, err := filepath.Rel(opts.InputFolder, filePath)
		if err != nil {
			relPath = filepath.Base(filePath)
		}

		fileOpts := deid.Options{
			Script:                  scriptText,
			ExtractBasicProfileTags: opts.ExtractProfile || cfg.Deid.ExtractBasicProfile,
			EnablePixelCheck:        opts.PixelCheck || cfg.Deid.PixelCheck,
		}

		// Assign the stable pseudonym before running the script, so the
		// placeholder substitution rewrites identity coherently.
		if meta, err := dcm.DecodeMetadataOnly(data); err == nil {
			anonID, idErr := mapper.AnonID(meta.GetPatientID(), meta.GetPatientName(), meta.GetPatientBirthDate())
			if idErr != nil {
				return idErr
			}
			fileOpts.PatientName = anonID
			fileOpts.PatientID = anonID
		}

		// Per-file isolation: a failed file is logged and the batch
		// continues. Library callers get the abort-on-first-failure
		// semantics from deid.AnonymizeFiles instead.
		result, err := engine.AnonymizeFile(ctx, relPath, data, fileOpts, nil)
		if err != nil {
			failed++
			ledger.MarkFailure(filePath, err.Error())
			logger.Error("file failed", zap.String("file", filePath), zap.Error(err))
			continue
		}

		outputPath := filepath.Join(outputFolder, relPath)
		if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
			return fmt.Errorf("could not create output directory: %w", err)
		}
		if err := os.WriteFile(outputPath, result.Data, 0o644); err != nil {
			return fmt.Errorf("could not write %s: %w", outputPath, err)
		}

		succeeded++
		ledger.MarkSuccess(filePath, outputPath)
		manifest.TotalFiles++
		manifest.Changes = append(manifest.Changes, result.Changes...)
		manifest.Warnings = append(manifest.Warnings, result.Warnings...)
		manifest.BasicProfileTagValues = append(manifest.BasicProfileTagValues, result.BasicProfileTagValues...)
	}
	fmt.Println()

	manifestPath := filepath.Join(outputFolder, cfg.Output.ManifestFile)
	if err := writeManifest(manifestPath, manifest); err != nil {
		return err
	}

	printChanges(manifest.Changes)
	printSummary(succeeded, failed, skipped, manifest, outputFolder, opts.MappingFile, manifestPath)
	return nil
}

// loadScript picks the script: explicit file flag, then config, then the
// built-in default.
func loadScript(scriptFile string, cfg config.Config) (string, error) {
	if scriptFile == "" {
		scriptFile = cfg.Deid.ScriptFile
	}
	if scriptFile == "" {
		return script.DefaultScript, nil
	}

	data, err := os.ReadFile(scriptFile)
	if err != nil {
		return "", fmt.Errorf("could not read script %s: %w", scriptFile, err)
	}
	return string(data), nil
}

func dryRun(files []string) error {
	fmt.Println("\n[DRY RUN] Would process:")
	for _, filePath := range files {
		fmt.Printf("  %s\n", filePath)
	}
	fmt.Printf("\n%d file(s), no files modified\n", len(files))
	return nil
}

func writeManifest(path string, manifest *deid.Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write manifest: %w", err)
	}
	return nil
}

// GenerateSecretKey generates a cryptographically secure 32-character hex key.
func GenerateSecretKey() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// printHeader prints the CLI header with configuration.
func printHeader(opts Options, outputFolder string, keyGenerated bool, fileCount int) {
	fmt.Println("DICOM De-identifier")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Input:     %s (%d files)\n", opts.InputFolder, fileCount)
	fmt.Printf("Output:    %s\n", outputFolder)
	fmt.Printf("Mapping:   %s\n", opts.MappingFile)

	if keyGenerated {
		fmt.Printf("Key:       %s\n", opts.SecretKey)
		fmt.Println()
		fmt.Println("WARNING: Secret key was auto-generated!")
		fmt.Println("         SAVE THIS KEY to keep patient pseudonyms consistent")
		fmt.Println("         across runs. Re-run with: -k " + opts.SecretKey)
		fmt.Println()
	} else if len(opts.SecretKey) > 8 {
		fmt.Printf("Key:       %s... (provided)\n", opts.SecretKey[:8])
	}

	var features []string
	if opts.PixelCheck {
		features = append(features, "Pixel text check")
	}
	if opts.ExtractProfile {
		features = append(features, "Basic profile extraction")
	}
	if opts.RetryFailed {
		features = append(features, "Retry failed")
	}
	if opts.DryRun {
		features = append(features, "Dry run")
	}
	if len(features) > 0 {
		fmt.Printf("Options:   %s\n", strings.Join(features, ", "))
	}
}

// printSummary prints the processing summary.
func printSummary(succeeded, failed, skipped int, manifest *deid.Manifest, outputFolder, mappingFile, manifestPath string) {
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Complete! %d succeeded, %d failed, %d skipped\n", succeeded, failed, skipped)
	fmt.Printf("Changes:   %d tag(s) rewritten across %d file(s)\n", len(manifest.Changes), manifest.TotalFiles)
	if len(manifest.Warnings) > 0 {
		fmt.Printf("Warnings:  %d\n", len(manifest.Warnings))
		for _, w := range manifest.Warnings {
			fmt.Printf("  ! %s\n", w)
		}
	}
	fmt.Printf("Manifest:  %s\n", manifestPath)
	fmt.Printf("Output:    %s\n", outputFolder)
	fmt.Printf("Mapping:   %s\n", mappingFile)
}

// progressBar renders a terminal progress bar.
type progressBar struct {
	width int
}

func newProgressBar(width int) *progressBar {
	return &progressBar{width: width}
}

func (pb *progressBar) update(current, total int) {
	if total == 0 {
		return
	}
	percent := float64(current) / float64(total)
	filled := int(percent * float64(pb.width))
	if filled > pb.width {
		filled = pb.width
	}
	bar := strings.Repeat("#", filled) + strings.Repeat("-", pb.width-filled)
	fmt.Printf("\r[%s] %3.0f%%  (%d/%d)", bar, percent*100, current, total)
}
