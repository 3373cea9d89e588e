package script

// DefaultScript clears the REMOVE-class tags of the Basic Application-Level
// Confidentiality Profile. PatientID is deliberately not touched: it is
// replace-class, and rewriting it is the pseudonymization layer's job via
// the placeholder lines. Dates are left to the reporting catalogue; see
// audit.BasicProfileTags.
const DefaultScript = `// Default de-identification script
// Basic Application-Level Confidentiality Profile, REMOVE-class tags

(0008,0050) := ""
(0008,0080) := ""
(0008,0081) := ""
(0008,0090) := ""
(0008,0092) := ""
(0008,0094) := ""
(0008,1010) := ""
(0008,1040) := ""
(0008,1048) := ""
(0008,1050) := ""
(0008,1060) := ""
(0008,1070) := ""
(0008,1080) := ""
(0010,0010) := ""
(0010,0030) := ""
(0010,0032) := ""
(0010,1000) := ""
(0010,1001) := ""
(0010,1010) := ""
(0010,1040) := ""
(0010,2154) := ""
(0010,2160) := ""
(0010,2180) := ""
(0010,21B0) := ""
(0010,4000) := ""
(0018,1000) := ""
(0020,0010) := ""
(0032,1032) := ""
(0040,0254) := ""
`
