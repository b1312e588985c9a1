package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/export"
	"github.com/alexanderramin/wbs/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportService_CSVUsesOwnerNamesAndRollups(t *testing.T) {
	e := newEnv(t, testutil.NewTestDB(t))
	ctx := context.Background()
	owner := testutil.NewTestPerson("Dana Reyes")
	require.NoError(t, e.people.Create(ctx, owner))

	svc := e.wbsService()
	phase := create(t, svc, e.project.ID, "Build", "")
	_, err := svc.Upsert(ctx, e.project.ID, "", domain.NodePatch{
		ParentID:    ptr(phase.ID),
		Name:        ptr(`Task, "Alpha"`),
		OwnerID:     ptr(owner.ID),
		EffortHours: ptr(6.0),
	})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, e.project.ID, "", domain.NodePatch{
		ParentID:    ptr(phase.ID),
		Name:        ptr("Orphaned owner"),
		OwnerID:     ptr("former-employee"),
		EffortHours: ptr(4.0),
	})
	require.NoError(t, err)

	doc, err := NewExportService(svc, e.projects, e.people).ExportCSV(ctx, e.project.ID)
	require.NoError(t, err)
	assert.Equal(t, "wbs-ERP.csv", doc.Filename)
	assert.Equal(t, export.ContentTypeCSV, doc.ContentType)

	lines := strings.Split(strings.TrimSpace(string(doc.Body)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "code,name,"))
	assert.Contains(t, lines[1], "1,Build,")
	assert.Contains(t, lines[1], ",10,", "parent row carries the rolled-up effort")
	assert.Contains(t, lines[2], `"Task, ""Alpha"""`)
	assert.Contains(t, lines[2], "Dana Reyes")
	assert.Contains(t, lines[3], "former-employee")
}

func TestExportService_JSONNestsChildren(t *testing.T) {
	e := newEnv(t, testutil.NewTestDB(t))
	ctx := context.Background()
	svc := e.wbsService()
	a := create(t, svc, e.project.ID, "A", "")
	create(t, svc, e.project.ID, "A1", a.ID)

	doc, err := NewExportService(svc, e.projects, e.people).ExportJSON(ctx, e.project.ID)
	require.NoError(t, err)
	assert.Equal(t, "wbs-ERP.json", doc.Filename)
	assert.Equal(t, export.ContentTypeJSON, doc.ContentType)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(doc.Body, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "1", out[0]["code"])
	children, ok := out[0]["children"].([]any)
	require.True(t, ok)
	require.Len(t, children, 1)
	assert.Equal(t, "1.1", children[0].(map[string]any)["code"])
}

func TestExportService_UnknownProjectIsNotFound(t *testing.T) {
	e := newEnv(t, testutil.NewTestDB(t))
	svc := NewExportService(e.wbsService(), e.projects, e.people)

	_, err := svc.ExportCSV(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
