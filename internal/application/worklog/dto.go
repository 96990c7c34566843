package worklog

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/worklog/backend/internal/domain/shared"
	"github.com/worklog/backend/internal/domain/worklog"
)

// FlexStrings is a string list that also accepts a single JSON string,
// coercing it to a one-element list. Historical clients send scalar
// hours/materials values and depend on this behavior.
type FlexStrings []string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = nil
		return nil
	}
	if data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*f = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*f = FlexStrings{single}
	return nil
}

// CreateNoteRequest is the payload for delivery note creation.
// WorkDate uses the 2006-01-02 layout.
type CreateNoteRequest struct {
	ClientID    string      `json:"clientId" binding:"required,uuid"`
	ProjectID   string      `json:"projectId" binding:"required,uuid"`
	Format      string      `json:"format" binding:"required,oneof=hours material"`
	Hours       FlexStrings `json:"hours"`
	Materials   FlexStrings `json:"materials"`
	Description string      `json:"description"`
	WorkDate    string      `json:"workdate" binding:"required"`
}

// SignNoteRequest carries a base64-encoded PNG signature image
type SignNoteRequest struct {
	Signature string `json:"signature" binding:"required"`
}

// NoteResponse is the outward representation of a delivery note
type NoteResponse struct {
	ID                   string     `json:"id"`
	ClientID             string     `json:"clientId"`
	ProjectID            string     `json:"projectId"`
	Format               string     `json:"format"`
	Hours                []string   `json:"hours"`
	Materials            []string   `json:"materials"`
	Description          string     `json:"description,omitempty"`
	WorkDate             time.Time  `json:"workdate"`
	Signed               bool       `json:"signed"`
	SignatureArtifactRef string     `json:"signatureArtifactRef,omitempty"`
	PDFArtifactRef       string     `json:"pdfArtifactRef,omitempty"`
	OwnerUserID          string     `json:"ownerUserId"`
	Archived             bool       `json:"archived"`
	ArchivedAt           *time.Time `json:"archivedAt,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// ToNoteResponse converts a note aggregate to its response DTO
func ToNoteResponse(n *worklog.DeliveryNote) *NoteResponse {
	return &NoteResponse{
		ID:                   n.ID.String(),
		ClientID:             n.ClientID.String(),
		ProjectID:            n.ProjectID.String(),
		Format:               string(n.Format),
		Hours:                n.Hours,
		Materials:            n.Materials,
		Description:          n.Description,
		WorkDate:             n.WorkDate,
		Signed:               n.IsSigned(),
		SignatureArtifactRef: n.SignatureArtifactRef,
		PDFArtifactRef:       n.PDFArtifactRef,
		OwnerUserID:          n.OwnerUserID.String(),
		Archived:             n.IsArchived(),
		ArchivedAt:           n.ArchivedAt,
		CreatedAt:            n.CreatedAt,
		UpdatedAt:            n.UpdatedAt,
	}
}

func toNoteResponses(page *shared.Paginated[worklog.DeliveryNote]) *shared.Paginated[NoteResponse] {
	items := make([]NoteResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *ToNoteResponse(&page.Items[i]))
	}
	out := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &out
}
