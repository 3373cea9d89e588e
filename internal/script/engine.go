package script

import (
	"fmt"

	"github.com/suyashkumar/dicom/pkg/tag"

	dcm "dicom-deid/internal/dicom"
)

// Engine executes a parsed script against a loaded byte stream. Construction
// fails on unparsable scripts; that is what pre-validation relies on. One
// engine handles one byte stream at a time.
type Engine struct {
	ops  []Op
	file *dcm.File
}

// Parse builds an engine from a script string.
func Parse(script string) (*Engine, error) {
	ops, err := parseOps(script)
	if err != nil {
		return nil, fmt.Errorf("could not parse script: %w", err)
	}
	return &Engine{ops: ops}, nil
}

// LoadBytes decodes a DICOM byte stream for rule execution.
func (e *Engine) LoadBytes(data []byte) error {
	f, err := dcm.Decode(data)
	if err != nil {
		return err
	}
	e.file = f
	return nil
}

// ApplyRules runs every directive against the loaded dataset, in script
// order.
func (e *Engine) ApplyRules() error {
	if e.file == nil {
		return fmt.Errorf("no bytes loaded")
	}

	for _, op := range e.ops {
		t := tag.Tag{Group: op.Group, Element: op.Elem}
		switch op.Kind {
		case OpAssign:
			if err := e.file.SetString(t, op.Value); err != nil {
				return fmt.Errorf("could not assign (%04x,%04x): %w", op.Group, op.Elem, err)
			}
		case OpRemove:
			e.file.Remove(t)
		}
	}
	return nil
}

// Serialize writes the rule-applied dataset back to a byte stream.
func (e *Engine) Serialize() ([]byte, error) {
	if e.file == nil {
		return nil, fmt.Errorf("no bytes loaded")
	}
	return e.file.Serialize()
}
