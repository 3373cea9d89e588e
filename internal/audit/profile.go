package audit

import (
	"dicom-deid/internal/dicom"
	"dicom-deid/internal/tagmeta"
)

// ProfileValue records one identifying value that existed in a dataset
// before anonymization.
type ProfileValue struct {
	Tag      string `json:"tag"` // display form "(gggg,eeee)"
	TagName  string `json:"tagName"`
	Value    string `json:"value"`
	FileName string `json:"fileName"`
}

// ProfileTag is one entry of the Basic Application-Level Confidentiality
// Profile catalogue.
type ProfileTag struct {
	Canonical string
	Name      string
}

// BasicProfileTags is the fixed, ordered catalogue of identifying tags from
// the DICOM Basic Application-Level Confidentiality Profile. It is a
// reporting table: it records what PII existed in a file, independent of
// what the active script actually scrubs. Keep it separate from the default
// script's tag list; the two diverge on purpose (the catalogue carries the
// date/time MODIFY entries, the script only the REMOVE-class tags).
var BasicProfileTags = []ProfileTag{
	{"00080020", "Study Date"},
	{"00080021", "Series Date"},
	{"00080022", "Acquisition Date"},
	{"00080023", "Content Date"},
	{"00080030", "Study Time"},
	{"00080031", "Series Time"},
	{"00080032", "Acquisition Time"},
	{"00080033", "Content Time"},
	{"00080050", "Accession Number"},
	{"00080080", "Institution Name"},
	{"00080081", "Institution Address"},
	{"00080090", "Referring Physician's Name"},
	{"00080092", "Referring Physician's Address"},
	{"00080094", "Referring Physician's Telephone Numbers"},
	{"00081010", "Station Name"},
	{"00081040", "Institutional Department Name"},
	{"00081048", "Physician(s) of Record"},
	{"00081050", "Performing Physician's Name"},
	{"00081060", "Name of Physician(s) Reading Study"},
	{"00081070", "Operators' Name"},
	{"00081080", "Admitting Diagnoses Description"},
	{"00100010", "Patient's Name"},
	{"00100020", "Patient ID"},
	{"00100030", "Patient's Birth Date"},
	{"00100032", "Patient's Birth Time"},
	{"00101000", "Other Patient IDs"},
	{"00101001", "Other Patient Names"},
	{"00101010", "Patient's Age"},
	{"00101040", "Patient's Address"},
	{"00102154", "Patient's Telephone Numbers"},
	{"00102160", "Ethnic Group"},
	{"00102180", "Occupation"},
	{"001021B0", "Additional Patient History"},
	{"00104000", "Patient Comments"},
	{"00181000", "Device Serial Number"},
	{"00181030", "Protocol Name"},
	{"00200010", "Study ID"},
	{"00321032", "Requesting Physician"},
	{"00400254", "Performed Procedure Step Description"},
}

// ExtractProfileValues pulls the pre-anonymization values for every
// catalogue tag present and non-empty in the original dataset. It runs
// against the dataset before any rules are applied; its purpose is to record
// what identifying information existed, whether or not the script removes it.
func ExtractProfileValues(original *dicom.Snapshot, fileName string) []ProfileValue {
	var values []ProfileValue
	for _, pt := range BasicProfileTags {
		var v string
		var ok bool
		if alias := tagmeta.AliasFor(pt.Canonical); alias != "" {
			v, ok = original.Get(alias)
		}
		if !ok {
			v, ok = original.Get(pt.Canonical)
		}
		if !ok {
			continue
		}

		repaired, _ := RepairText(v)
		if repaired == "" {
			continue
		}

		values = append(values, ProfileValue{
			Tag:      tagmeta.DisplayTag(pt.Canonical),
			TagName:  pt.Name,
			Value:    repaired,
			FileName: fileName,
		})
	}
	return values
}
