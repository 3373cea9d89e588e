package script

import (
	"testing"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"dicom-deid/internal/audit"
	dcm "dicom-deid/internal/dicom"
)

// encodePatientStream builds a real DICOM byte stream carrying a small
// identifying dataset.
func encodePatientStream(t *testing.T) []byte {
	t.Helper()

	pairs := []struct {
		tag   tag.Tag
		value string
	}{
		{tag.TransferSyntaxUID, "1.2.840.10008.1.2.1"},
		{tag.SOPClassUID, "1.2.840.10008.5.1.4.1.1.7"},
		{tag.SOPInstanceUID, "1.2.3.4.5"},
		{tag.PatientName, "John Smith"},
		{tag.PatientID, "12345"},
		{tag.InstitutionName, "General Hospital"},
	}

	var elems []*dicom.Element
	for _, p := range pairs {
		elem, err := dicom.NewElement(p.tag, []string{p.value})
		if err != nil {
			t.Fatalf("could not build element %v: %v", p.tag, err)
		}
		elems = append(elems, elem)
	}

	f := &dcm.File{Data: dicom.Dataset{Elements: elems}}
	data, err := f.Serialize()
	if err != nil {
		t.Fatalf("could not serialize dataset: %v", err)
	}
	return data
}

func runScript(t *testing.T, script string, data []byte) []byte {
	t.Helper()

	engine, err := Parse(script)
	if err != nil {
		t.Fatalf("script does not parse: %v", err)
	}
	if err := engine.LoadBytes(data); err != nil {
		t.Fatalf("LoadBytes failed: %v", err)
	}
	if err := engine.ApplyRules(); err != nil {
		t.Fatalf("ApplyRules failed: %v", err)
	}
	out, err := engine.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	return out
}

func TestDefaultScriptEndToEnd(t *testing.T) {
	data := encodePatientStream(t)

	original, err := dcm.Decode(data)
	if err != nil {
		t.Fatalf("could not decode original: %v", err)
	}
	before := original.Snapshot()

	out := runScript(t, DefaultScript, data)

	anonymized, err := dcm.Decode(out)
	if err != nil {
		t.Fatalf("could not decode anonymized output: %v", err)
	}
	after := anonymized.Snapshot()

	changes := audit.Diff(before, after, "scan.dcm")
	byName := make(map[string]audit.Change)
	for _, c := range changes {
		byName[c.TagName] = c
	}

	inst, ok := byName["Institution Name"]
	if !ok {
		t.Fatalf("no Institution Name change in %+v", changes)
	}
	if inst.Tag != "(0008,0080)" {
		t.Errorf("Institution Name tag = %q, want (0008,0080)", inst.Tag)
	}
	if inst.OriginalValue != "General Hospital" || inst.NewValue != "" {
		t.Errorf("Institution Name change = %q -> %q", inst.OriginalValue, inst.NewValue)
	}

	name, ok := byName["Patient's Name"]
	if !ok {
		t.Fatalf("no Patient's Name change in %+v", changes)
	}
	if name.OriginalValue != "John Smith" || name.NewValue != "" {
		t.Errorf("Patient's Name change = %q -> %q", name.OriginalValue, name.NewValue)
	}

	if _, ok := byName["Patient ID"]; ok {
		t.Error("default script changed PatientID")
	}
	if got, want := anonymized.GetPatientID(), original.GetPatientID(); got != want || got == "" {
		t.Errorf("PatientID after run = %q, want untouched %q", got, want)
	}
}

func TestApplyRulesAssignAndRemove(t *testing.T) {
	data := encodePatientStream(t)

	// Remove of an absent tag (0010,4000) must be a no-op.
	out := runScript(t, "(0010,0010) := \"ANON\"\n- (0008,0080)\n- (0010,4000)\n", data)

	decoded, err := dcm.Decode(out)
	if err != nil {
		t.Fatalf("could not decode output: %v", err)
	}

	if got := decoded.GetPatientName(); got != "ANON" {
		t.Errorf("PatientName = %q, want ANON", got)
	}
	if _, ok := decoded.Snapshot().Get("InstitutionName"); ok {
		t.Error("removed InstitutionName still present")
	}
}

func TestApplyRulesWithoutLoad(t *testing.T) {
	engine, err := Parse(DefaultScript)
	if err != nil {
		t.Fatalf("script does not parse: %v", err)
	}
	if err := engine.ApplyRules(); err == nil {
		t.Error("ApplyRules without LoadBytes did not error")
	}
	if _, err := engine.Serialize(); err == nil {
		t.Error("Serialize without LoadBytes did not error")
	}
}
