package dicom

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// File wraps a decoded DICOM dataset.
type File struct {
	Data dicom.Dataset
}

// Decode parses a DICOM byte stream including pixel data.
func Decode(data []byte) (*File, error) {
	ds, err := dicom.Parse(bytes.NewReader(data), int64(len(data)), nil)
	if err != nil {
		return nil, fmt.Errorf("could not parse DICOM: %w", err)
	}
	return &File{Data: ds}, nil
}

// DecodeMetadataOnly parses a DICOM byte stream, skipping pixel data.
func DecodeMetadataOnly(data []byte) (*File, error) {
	ds, err := dicom.Parse(bytes.NewReader(data), int64(len(data)), nil, dicom.SkipPixelData())
	if err != nil {
		return nil, fmt.Errorf("could not parse DICOM: %w", err)
	}
	return &File{Data: ds}, nil
}

// GetString returns a string value for a tag, or empty string if not found.
func (f *File) GetString(t tag.Tag) string {
	elem, err := f.Data.FindElementByTag(t)
	if err != nil {
		return ""
	}
	return elementString(elem)
}

// GetPatientName returns the patient name.
func (f *File) GetPatientName() string {
	return f.GetString(tag.PatientName)
}

// GetPatientID returns the patient ID.
func (f *File) GetPatientID() string {
	return f.GetString(tag.PatientID)
}

// GetPatientBirthDate returns the patient DOB.
func (f *File) GetPatientBirthDate() string {
	return f.GetString(tag.PatientBirthDate)
}

// elementString renders an element value as a single string. Multi-valued
// elements are joined with ", ".
func elementString(elem *dicom.Element) string {
	if elem == nil || elem.Value == nil {
		return ""
	}

	val := elem.Value.GetValue()
	if val == nil {
		return ""
	}

	switch v := val.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case []int:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, ", ")
	case []float64:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.FormatFloat(n, 'g', -1, 64)
		}
		return strings.Join(parts, ", ")
	case []byte:
		return string(v)
	}

	return fmt.Sprintf("%v", val)
}
