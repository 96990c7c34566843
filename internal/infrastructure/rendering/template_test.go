package rendering

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appworklog "github.com/worklog/backend/internal/application/worklog"
	"github.com/worklog/backend/internal/domain/worklog"
)

func testSnapshot() *appworklog.NoteSnapshot {
	return &appworklog.NoteSnapshot{
		NoteID:      "4d2b7c19-0000-0000-0000-000000000000",
		Format:      worklog.NoteFormatHours,
		Hours:       []string{"8h installation", "2h travel"},
		Description: "On-site installation work",
		WorkDate:    time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),

		UserName:    "Jane Roe",
		UserEmail:   "jane@example.com",
		CompanyName: "Roe Servicios SL",

		ClientName:    "Acme Corp",
		ClientTaxID:   "B12345678",
		ClientAddress: "Calle Mayor 4, 28001 Madrid (Madrid)",

		ProjectName: "Warehouse refit",
		ProjectCode: "WH-2026",
	}
}

func TestBuildNoteHTML(t *testing.T) {
	t.Run("renders unsigned note with pending placeholder", func(t *testing.T) {
		html, err := BuildNoteHTML(testSnapshot())
		require.NoError(t, err)

		assert.Contains(t, html, "Jane Roe")
		assert.Contains(t, html, "Acme Corp")
		assert.Contains(t, html, "Warehouse refit")
		assert.Contains(t, html, "WH-2026")
		assert.Contains(t, html, "8h installation")
		assert.Contains(t, html, "2026-03-14")
		assert.Contains(t, html, "Pending signature")
		assert.NotContains(t, html, "data:image/png")
	})

	t.Run("embeds signature as data URL", func(t *testing.T) {
		snapshot := testSnapshot()
		snapshot.Signature = []byte("png-bytes")

		html, err := BuildNoteHTML(snapshot)
		require.NoError(t, err)

		encoded := base64.StdEncoding.EncodeToString(snapshot.Signature)
		assert.Contains(t, html, "data:image/png;base64,"+encoded)
		assert.NotContains(t, html, "Pending signature")
	})

	t.Run("renders material entries", func(t *testing.T) {
		snapshot := testSnapshot()
		snapshot.Format = worklog.NoteFormatMaterial
		snapshot.Hours = nil
		snapshot.Materials = []string{"Copper pipe 10m", "Fittings"}

		html, err := BuildNoteHTML(snapshot)
		require.NoError(t, err)

		assert.Contains(t, html, "Copper pipe 10m")
		assert.Contains(t, html, "Materials")
		assert.NotContains(t, html, "<h2>Hours</h2>")
	})

	t.Run("escapes HTML in user content", func(t *testing.T) {
		snapshot := testSnapshot()
		snapshot.Description = `<script>alert("x")</script>`

		html, err := BuildNoteHTML(snapshot)
		require.NoError(t, err)

		assert.False(t, strings.Contains(html, "<script>alert"))
	})
}
