package admission

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func verifiedRequiredSet() []UploadedDocument {
	docs := make([]UploadedDocument, 0, len(ChecklistTemplate))
	for _, tmpl := range ChecklistTemplate {
		if tmpl.Required {
			docs = append(docs, UploadedDocument{Type: tmpl.Type, Status: DocumentVerified})
		}
	}
	return docs
}

func TestMergeChecklistKeepsEveryTemplateEntry(t *testing.T) {
	entries := MergeChecklist(nil)
	require.Len(t, entries, len(ChecklistTemplate))
	for _, entry := range entries {
		require.False(t, entry.Uploaded)
		require.Equal(t, DocumentPending, entry.Status)
	}
}

func TestMergeChecklistJoinsByType(t *testing.T) {
	entries := MergeChecklist([]UploadedDocument{
		{Type: "birth_certificate", Status: DocumentVerified},
		{Type: "passport_photo", Status: DocumentRejected},
	})

	byType := make(map[string]ChecklistEntry, len(entries))
	for _, entry := range entries {
		byType[entry.Type] = entry
	}

	require.True(t, byType["birth_certificate"].Uploaded)
	require.Equal(t, DocumentVerified, byType["birth_certificate"].Status)
	require.Equal(t, DocumentRejected, byType["passport_photo"].Status)
	require.Equal(t, DocumentPending, byType["proof_of_address"].Status)
}

func TestMergeChecklistAppendsUnknownTypes(t *testing.T) {
	entries := MergeChecklist([]UploadedDocument{{Type: "custody_order", Status: DocumentPending}})
	require.Len(t, entries, len(ChecklistTemplate)+1)
	last := entries[len(entries)-1]
	require.Equal(t, "custody_order", last.Type)
	require.False(t, last.Required)
	require.True(t, last.Uploaded)
}

func TestAllRequiredVerified(t *testing.T) {
	docs := verifiedRequiredSet()
	require.True(t, AllRequiredVerified(docs))

	// One required document still pending.
	docs[2].Status = DocumentPending
	require.False(t, AllRequiredVerified(docs))

	// A required type never uploaded at all.
	require.False(t, AllRequiredVerified(docs[1:]))

	// Optional uploads do not influence the quantifier.
	docs[2].Status = DocumentVerified
	docs = append(docs, UploadedDocument{Type: "transfer_certificate", Status: DocumentRejected})
	require.True(t, AllRequiredVerified(docs))
}
