package admission

// DocumentStatus is the verification state of an uploaded document.
type DocumentStatus string

// Document statuses.
const (
	DocumentPending  DocumentStatus = "pending"
	DocumentVerified DocumentStatus = "verified"
	DocumentRejected DocumentStatus = "rejected"
)

// ChecklistTemplateEntry is one document type the review stage expects.
type ChecklistTemplateEntry struct {
	Type     string
	Label    string
	Required bool
}

// ChecklistTemplate is the fixed set of document types checked during
// Review & Verify. Six types are required; the rest are optional extras.
var ChecklistTemplate = []ChecklistTemplateEntry{
	{Type: "birth_certificate", Label: "Birth Certificate", Required: true},
	{Type: "immunization_record", Label: "Immunization Record", Required: true},
	{Type: "previous_school_report", Label: "Previous School Report", Required: true},
	{Type: "passport_photo", Label: "Passport Photograph", Required: true},
	{Type: "proof_of_address", Label: "Proof of Address", Required: true},
	{Type: "parent_id", Label: "Parent / Guardian ID", Required: true},
	{Type: "sen_assessment_report", Label: "SEN Assessment Report", Required: false},
	{Type: "transfer_certificate", Label: "Transfer Certificate", Required: false},
}

// UploadedDocument is the checklist-relevant view of a stored document row.
type UploadedDocument struct {
	Type   string
	Status DocumentStatus
}

// ChecklistEntry is one merged row of the checklist view.
type ChecklistEntry struct {
	Type     string         `json:"document_type"`
	Label    string         `json:"label"`
	Required bool           `json:"required"`
	Uploaded bool           `json:"uploaded"`
	Status   DocumentStatus `json:"status"`
}

// MergeChecklist joins the template against uploaded rows by document type.
// Every template entry appears even when never uploaded, defaulting to
// pending. Uploads outside the template are appended after it.
func MergeChecklist(uploaded []UploadedDocument) []ChecklistEntry {
	byType := make(map[string]UploadedDocument, len(uploaded))
	for _, doc := range uploaded {
		byType[doc.Type] = doc
	}

	entries := make([]ChecklistEntry, 0, len(ChecklistTemplate))
	seen := make(map[string]struct{}, len(ChecklistTemplate))
	for _, tmpl := range ChecklistTemplate {
		entry := ChecklistEntry{
			Type:     tmpl.Type,
			Label:    tmpl.Label,
			Required: tmpl.Required,
			Status:   DocumentPending,
		}
		if doc, ok := byType[tmpl.Type]; ok {
			entry.Uploaded = true
			entry.Status = doc.Status
		}
		entries = append(entries, entry)
		seen[tmpl.Type] = struct{}{}
	}

	for _, doc := range uploaded {
		if _, ok := seen[doc.Type]; ok {
			continue
		}
		entries = append(entries, ChecklistEntry{
			Type:     doc.Type,
			Label:    doc.Type,
			Uploaded: true,
			Status:   doc.Status,
		})
		seen[doc.Type] = struct{}{}
	}

	return entries
}

// AllRequiredVerified reports whether every required template entry has a
// matching uploaded document with verified status. A required type that was
// never uploaded fails the quantifier.
func AllRequiredVerified(uploaded []UploadedDocument) bool {
	byType := make(map[string]DocumentStatus, len(uploaded))
	for _, doc := range uploaded {
		byType[doc.Type] = doc.Status
	}

	for _, tmpl := range ChecklistTemplate {
		if !tmpl.Required {
			continue
		}
		if byType[tmpl.Type] != DocumentVerified {
			return false
		}
	}
	return true
}
