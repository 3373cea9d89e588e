package tagmeta

// canonicalNames is the hand-maintained canonical tag to display name table.
// It covers the confidentiality-profile catalogue plus tags that show up in
// audit trails often enough that the synthesized dictionary name reads badly.
var canonicalNames = map[string]string{
	"00080020": "Study Date",
	"00080021": "Series Date",
	"00080022": "Acquisition Date",
	"00080023": "Content Date",
	"00080030": "Study Time",
	"00080031": "Series Time",
	"00080032": "Acquisition Time",
	"00080033": "Content Time",
	"00080050": "Accession Number",
	"00080080": "Institution Name",
	"00080081": "Institution Address",
	"00080090": "Referring Physician's Name",
	"00080092": "Referring Physician's Address",
	"00080094": "Referring Physician's Telephone Numbers",
	"00081010": "Station Name",
	"00081030": "Study Description",
	"0008103E": "Series Description",
	"00081040": "Institutional Department Name",
	"00081048": "Physician(s) of Record",
	"00081050": "Performing Physician's Name",
	"00081060": "Name of Physician(s) Reading Study",
	"00081070": "Operators' Name",
	"00081080": "Admitting Diagnoses Description",
	"00100010": "Patient's Name",
	"00100020": "Patient ID",
	"00100030": "Patient's Birth Date",
	"00100032": "Patient's Birth Time",
	"00100040": "Patient's Sex",
	"00101000": "Other Patient IDs",
	"00101001": "Other Patient Names",
	"00101010": "Patient's Age",
	"00101020": "Patient's Size",
	"00101030": "Patient's Weight",
	"00101040": "Patient's Address",
	"00102154": "Patient's Telephone Numbers",
	"00102160": "Ethnic Group",
	"00102180": "Occupation",
	"001021B0": "Additional Patient History",
	"00104000": "Patient Comments",
	"00181000": "Device Serial Number",
	"00181030": "Protocol Name",
	"00200010": "Study ID",
	"00321032": "Requesting Physician",
	"00400254": "Performed Procedure Step Description",
	"00400275": "Request Attributes Sequence",
}

// aliasTags maps decoder field names back to canonical tags for entries the
// decoder's dictionary spells differently or does not carry. The dictionary
// itself is consulted afterwards, so this table only needs the gaps.
var aliasTags = map[string]string{
	"PhysiciansOfRecord":                "00081048",
	"NameOfPhysiciansReadingStudy":      "00081060",
	"OperatorsName":                     "00081070",
	"AdmittingDiagnosesDescription":     "00081080",
	"OtherPatientIDs":                   "00101000",
	"AdditionalPatientHistory":          "001021B0",
	"PatientComments":                   "00104000",
	"PerformedProcedureStepDescription": "00400254",
}
