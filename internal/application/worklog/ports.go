package worklog

import (
	"context"
	"time"

	"github.com/worklog/backend/internal/domain/worklog"
)

// ArtifactStore stores opaque byte blobs (signature images, rendered
// documents) and addresses them by an external reference.
type ArtifactStore interface {
	// Upload stores data under a name hint and returns the external reference
	Upload(ctx context.Context, name string, data []byte, contentType string) (string, error)

	// Fetch retrieves the content behind an external reference
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// NoteSnapshot is a fully populated view of a delivery note for rendering:
// the note itself plus the owner, client and project data it references.
type NoteSnapshot struct {
	NoteID      string
	Format      worklog.NoteFormat
	Hours       []string
	Materials   []string
	Description string
	WorkDate    time.Time

	UserName    string
	UserEmail   string
	CompanyName string

	ClientName    string
	ClientTaxID   string
	ClientAddress string

	ProjectName string
	ProjectCode string

	// Signature holds the PNG bytes of the signature image, empty for drafts
	Signature []byte
}

// Signed reports whether the snapshot carries a signature image
func (s *NoteSnapshot) Signed() bool {
	return len(s.Signature) > 0
}

// NoteRenderer produces a PDF document from a note snapshot
type NoteRenderer interface {
	Render(ctx context.Context, snapshot *NoteSnapshot) ([]byte, error)
}
