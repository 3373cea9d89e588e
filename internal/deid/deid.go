// Package deid orchestrates the de-identification pipeline: decode, extract
// the confidentiality-profile values, run the rule script, diff before and
// after, and optionally check the pixels for burned-in text.
package deid

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dicom-deid/internal/audit"
	dcm "dicom-deid/internal/dicom"
	"dicom-deid/internal/pixeltext"
	"dicom-deid/internal/script"
)

// RuleEngine applies a parsed script to one loaded byte stream.
type RuleEngine interface {
	LoadBytes(data []byte) error
	ApplyRules() error
	Serialize() ([]byte, error)
}

// RuleEngineFactory constructs a rule engine from a script string, failing
// on unparsable scripts.
type RuleEngineFactory func(s string) (RuleEngine, error)

// Decoder turns a DICOM byte stream into a dataset snapshot.
type Decoder func(data []byte) (*dcm.Snapshot, error)

// PixelChecker runs the advisory burned-in-text check over an anonymized
// byte stream.
type PixelChecker interface {
	Detect(ctx context.Context, data []byte, fileName string) (bool, string)
}

// Options configures one anonymization call.
type Options struct {
	// Script is the rule script to run; empty selects the built-in
	// default script.
	Script string
	// PatientName and PatientID are substituted into the script's
	// placeholder lines when present.
	PatientName string
	PatientID   string
	// ExtractBasicProfileTags records the pre-anonymization values of the
	// confidentiality-profile catalogue.
	ExtractBasicProfileTags bool
	// EnablePixelCheck runs OCR over the anonymized pixel data.
	EnablePixelCheck bool
}

// File is one batch input.
type File struct {
	Name string
	Data []byte
}

// FileResult is the outcome of anonymizing a single file.
type FileResult struct {
	Data                  []byte
	Changes               []audit.Change
	Warnings              []string
	BasicProfileTagValues []audit.ProfileValue
}

// Manifest aggregates the audit trail for a batch. It is assembled
// synchronously while the batch runs and immutable once returned.
type Manifest struct {
	ID                    string               `json:"id"`
	Timestamp             string               `json:"timestamp"`
	TotalFiles            int                  `json:"totalFiles"`
	Changes               []audit.Change       `json:"changes"`
	Warnings              []string             `json:"warnings"`
	BasicProfileTagValues []audit.ProfileValue `json:"basicProfileTagValues,omitempty"`
}

// StageFunc observes per-step progress within one file. Callbacks run inline
// on the calling goroutine; they are observation hooks, not control flow.
type StageFunc func(fileName, stage string)

// ProgressFunc observes batch progress. fileIndex is 1-based.
type ProgressFunc func(fileIndex, totalFiles int, fileName, stage string)

// Engine runs the pipeline. The collaborator fields exist so tests can
// substitute fakes; NewEngine wires the production implementations.
type Engine struct {
	Logger        *zap.Logger
	NewRuleEngine RuleEngineFactory
	Decode        Decoder
	PixelCheck    PixelChecker
}

// NewEngine creates an engine with the production decoder, rule engine, and
// Tesseract-backed pixel checker.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		Logger: logger,
		NewRuleEngine: func(s string) (RuleEngine, error) {
			return script.Parse(s)
		},
		Decode: func(data []byte) (*dcm.Snapshot, error) {
			f, err := dcm.Decode(data)
			if err != nil {
				return nil, err
			}
			return f.Snapshot(), nil
		},
		PixelCheck: pixeltext.NewDetector(pixeltext.NewTesseractWorker, logger),
	}
}

// AnonymizeFile runs the full pipeline over one file. Decode and rule
// execution failures are fatal and identify the file; the pixel check never
// is. onProgress may be nil.
func (e *Engine) AnonymizeFile(ctx context.Context, fileName string, data []byte, opts Options, onProgress StageFunc) (*FileResult, error) {
	report := func(stage string) {
		if onProgress != nil {
			onProgress(fileName, stage)
		}
	}

	report("decode")
	original, err := e.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: could not decode: %w", fileName, err)
	}

	result := &FileResult{}

	if opts.ExtractBasicProfileTags {
		report("profile")
		result.BasicProfileTagValues = audit.ExtractProfileValues(original, fileName)
	}

	s := opts.Script
	if s == "" {
		s = script.DefaultScript
	}
	s = script.Substitute(s, opts.PatientName, opts.PatientID)
	s = script.Normalize(s)

	report("apply")
	engine, err := e.NewRuleEngine(s)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid script: %w", fileName, err)
	}
	if err := engine.LoadBytes(data); err != nil {
		return nil, fmt.Errorf("%s: could not load: %w", fileName, err)
	}
	if err := engine.ApplyRules(); err != nil {
		return nil, fmt.Errorf("%s: could not apply rules: %w", fileName, err)
	}
	result.Data, err = engine.Serialize()
	if err != nil {
		return nil, fmt.Errorf("%s: could not serialize: %w", fileName, err)
	}

	report("diff")
	anonymized, err := e.Decode(result.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: could not decode anonymized output: %w", fileName, err)
	}
	result.Changes = audit.Diff(original, anonymized, fileName)

	if opts.EnablePixelCheck {
		report("pixelcheck")
		if detected, _ := e.PixelCheck.Detect(ctx, result.Data, fileName); detected {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("text detected in pixel data of %s - may contain burned-in PHI", fileName))
		}
	}

	report("done")
	return result, nil
}

// AnonymizeFiles processes a batch strictly sequentially; decode and rule
// execution are CPU- and memory-heavy per file, and the sequential loop
// bounds peak memory and keeps progress deterministic. The first fatal file
// aborts the batch; callers needing per-file isolation wrap AnonymizeFile
// themselves. Cancellation is checked between files via ctx.
func (e *Engine) AnonymizeFiles(ctx context.Context, files []File, opts Options, onProgress ProgressFunc) (*Manifest, error) {
	manifest := &Manifest{
		ID:        uuid.NewString(),
		Timestamp: time.Now().Format(time.RFC3339),
	}

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch cancelled after %d of %d files: %w", i, len(files), err)
		}

		var stage StageFunc
		if onProgress != nil {
			index, total := i+1, len(files)
			stage = func(fileName, s string) {
				onProgress(index, total, fileName, s)
			}
		}

		result, err := e.AnonymizeFile(ctx, f.Name, f.Data, opts, stage)
		if err != nil {
			return nil, err
		}

		manifest.TotalFiles++
		manifest.Changes = append(manifest.Changes, result.Changes...)
		manifest.Warnings = append(manifest.Warnings, result.Warnings...)
		manifest.BasicProfileTagValues = append(manifest.BasicProfileTagValues, result.BasicProfileTagValues...)
	}

	return manifest, nil
}
