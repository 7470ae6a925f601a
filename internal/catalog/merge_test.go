package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starford/showcase/internal/models"
)

func TestMerge_LocalWinsOnCollision(t *testing.T) {
	local := []models.Project{{ID: "Forge-Macro", Name: "Forge (catalog)", Status: "stable", Version: "v1.0.0"}}
	remote := []models.Project{
		{ID: "forge-macro", Name: "Forge-Macro", Status: "in-progress", Version: "branch: main"},
		{ID: "new-repo", Name: "new-repo", Status: "in-progress"},
	}
	got := Merge(local, remote, DefaultHideSet())
	require.Len(t, got, 2)
	require.Equal(t, "Forge (catalog)", got[0].Name)
	require.Equal(t, "v1.0.0", got[0].Version)
	require.Equal(t, "new-repo", got[1].Name)
}

func TestMerge_LocalAloneEqualsNormalized(t *testing.T) {
	raw := records(t, `[
		{"id":"x","name":"X","status":"planned"},
		{"id":"y","name":"Y","status":"stable"},
		{"id":"macro-creator","name":"Hidden"}
	]`)
	shaped := Normalize(raw, DefaultHideSet())
	require.Equal(t, shaped, Merge(shaped, nil, DefaultHideSet()))
	require.Equal(t, shaped, Merge(shaped, []models.Project{}, DefaultHideSet()))
}

func TestMerge_HideSetAppliedToBothSides(t *testing.T) {
	local := []models.Project{{ID: "MACRO-CREATOR", Name: "x"}, {ID: "ok", Name: "OK", Status: "stable"}}
	remote := []models.Project{{Name: "BestFreeSoftwareCo"}, {ID: "fine", Name: "Fine", Status: "planned"}}
	got := Merge(local, remote, DefaultHideSet())
	require.Equal(t, []string{"OK", "Fine"}, names(got))
}

func TestMerge_KeyFallsBackToName(t *testing.T) {
	local := []models.Project{{Name: "Shared Name", Status: "stable", Description: "local"}}
	remote := []models.Project{{Name: "shared name", Status: "planned", Description: "remote"}}
	got := Merge(local, remote, HideSet{})
	require.Len(t, got, 1)
	require.Equal(t, "local", got[0].Description)
}
