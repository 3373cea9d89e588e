package audit

import (
	"testing"

	"dicom-deid/internal/tagmeta"
)

func TestExtractProfileValues(t *testing.T) {
	original := snapshot(
		[2]string{"PatientName", "Jane Doe"},
		[2]string{"PatientAddress", ""},
		[2]string{"InstitutionName", "General Hospital"},
		[2]string{"Manufacturer", "Acme Imaging"}, // not in the catalogue
	)

	values := ExtractProfileValues(original, "scan.dcm")

	byName := make(map[string]ProfileValue)
	for _, v := range values {
		byName[v.TagName] = v
		if v.FileName != "scan.dcm" {
			t.Errorf("value %+v has file name %q, want scan.dcm", v, v.FileName)
		}
		if v.Value == "" {
			t.Errorf("value %+v has empty value", v)
		}
	}

	name, ok := byName["Patient's Name"]
	if !ok {
		t.Fatalf("no Patient's Name entry in %+v", values)
	}
	if name.Value != "Jane Doe" || name.Tag != "(0010,0010)" {
		t.Errorf("Patient's Name entry = %+v", name)
	}

	if _, ok := byName["Patient's Address"]; ok {
		t.Error("empty Patient's Address was included")
	}
	if _, ok := byName["Manufacturer"]; ok {
		t.Error("non-catalogue tag Manufacturer was included")
	}

	if inst, ok := byName["Institution Name"]; !ok || inst.Value != "General Hospital" {
		t.Errorf("Institution Name entry = %+v, ok = %v", inst, ok)
	}
}

func TestExtractProfileValuesOrder(t *testing.T) {
	original := snapshot(
		[2]string{"PatientName", "Jane Doe"},
		[2]string{"StudyDate", "20250101"},
	)

	values := ExtractProfileValues(original, "scan.dcm")
	if len(values) != 2 {
		t.Fatalf("got %d values, want 2: %+v", len(values), values)
	}
	// Catalogue order, not snapshot order: dates come first in the profile.
	if values[0].TagName != "Study Date" || values[1].TagName != "Patient's Name" {
		t.Errorf("catalogue order not preserved: %+v", values)
	}
}

func TestBasicProfileTagsResolve(t *testing.T) {
	for _, pt := range BasicProfileTags {
		if got := tagmeta.ResolveCanonicalTag(pt.Canonical); got != pt.Canonical {
			t.Errorf("catalogue tag %s does not round-trip: %s", pt.Canonical, got)
		}
	}
}
