package dicom

import (
	"bytes"
	"fmt"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// SetString sets a string value for a tag, creating the element if it does
// not exist yet.
func (f *File) SetString(t tag.Tag, value string) error {
	newValue, err := dicom.NewValue([]string{value})
	if err != nil {
		return fmt.Errorf("could not create value: %w", err)
	}

	if elem, err := f.Data.FindElementByTag(t); err == nil {
		newElem := &dicom.Element{
			Tag:                    t,
			ValueRepresentation:    elem.ValueRepresentation,
			RawValueRepresentation: elem.RawValueRepresentation,
			ValueLength:            uint32(len(value)),
			Value:                  newValue,
		}
		for i, e := range f.Data.Elements {
			if e.Tag == t {
				f.Data.Elements[i] = newElem
				return nil
			}
		}
		return nil
	}

	// Element absent: create it with the VR from the dictionary, falling
	// back to LO for tags the dictionary does not know.
	newElem, err := dicom.NewElement(t, []string{value})
	if err != nil {
		newElem = &dicom.Element{
			Tag:                    t,
			RawValueRepresentation: "LO",
			ValueLength:            uint32(len(value)),
			Value:                  newValue,
		}
	}
	f.Data.Elements = append(f.Data.Elements, newElem)
	return nil
}

// Remove deletes an element from the dataset. Removing an absent tag is a
// no-op.
func (f *File) Remove(t tag.Tag) {
	for i, e := range f.Data.Elements {
		if e.Tag == t {
			f.Data.Elements = append(f.Data.Elements[:i], f.Data.Elements[i+1:]...)
			return
		}
	}
}

// Serialize writes the dataset back to a byte stream with relaxed
// verification; many real-world DICOM files don't strictly follow VR
// specifications.
func (f *File) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	if err := dicom.Write(&buf, f.Data,
		dicom.SkipVRVerification(),
		dicom.SkipValueTypeVerification(),
		dicom.DefaultMissingTransferSyntax(),
	); err != nil {
		return nil, fmt.Errorf("could not write DICOM: %w", err)
	}
	return buf.Bytes(), nil
}
