package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starford/showcase/internal/models"
)

func records(t *testing.T, js string) []any {
	t.Helper()
	var v []any
	require.NoError(t, json.Unmarshal([]byte(js), &v))
	return v
}

func names(ps []models.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestNormalize_TrimsAndDropsBlankTags(t *testing.T) {
	got := Normalize(records(t, `[{"id":"a","name":"A","tags":["Macros",""," Rivals  "]}]`), HideSet{})
	require.Len(t, got, 1)
	require.Equal(t, []string{"Macros", "Rivals"}, got[0].Tags)
}

func TestNormalize_Defaults(t *testing.T) {
	got := Normalize(records(t, `[{"name":"Bare"}]`), HideSet{})
	require.Len(t, got, 1)
	p := got[0]
	require.Equal(t, "", p.ID)
	require.Equal(t, "", p.Description)
	require.Equal(t, models.StatusUnknown, p.Status)
	require.Equal(t, models.CategoryMacro, p.Category)
	require.Empty(t, p.Version)
	require.Empty(t, p.LastUpdated)
	require.Empty(t, p.RepoURL)
	require.Empty(t, p.DemoURL)
	require.NotNil(t, p.Tags)
	require.NotNil(t, p.Highlights)
}

func TestNormalize_DropsNonObjects(t *testing.T) {
	got := Normalize(records(t, `[null, 3, "x", [1], {"id":"ok","name":"OK"}]`), HideSet{})
	require.Equal(t, []string{"OK"}, names(got))
}

func TestNormalize_HideSetIsCaseInsensitive(t *testing.T) {
	in := records(t, `[
		{"id":"Macro-Creator","name":"Hidden by id"},
		{"name":"BestFreeSoftwareCo"},
		{"id":"kept","name":"bestfreesoftwareco"},
		{"id":"visible","name":"Visible"}
	]`)
	got := Normalize(in, DefaultHideSet())
	// Identity is id-or-name: a non-empty id shields a hidden name.
	require.ElementsMatch(t, []string{"bestfreesoftwareco", "Visible"}, names(got))
}

func TestNormalize_StatusOrder(t *testing.T) {
	in := records(t, `[
		{"id":"x","name":"X","status":"planned"},
		{"id":"z","name":"Z","status":"weird"},
		{"id":"w","name":"W","status":"in-progress"},
		{"id":"y","name":"Y","status":"stable"},
		{"id":"b","name":"B","status":"stable"}
	]`)
	got := Normalize(in, HideSet{})
	require.Equal(t, []string{"B", "Y", "W", "X", "Z"}, names(got))
}

func TestNormalize_ScalarCoercion(t *testing.T) {
	got := Normalize(records(t, `[{"id":42,"name":"N","version":0,"status":false,"highlights":["a",2,null,{}]}]`), HideSet{})
	require.Len(t, got, 1)
	require.Equal(t, "42", got[0].ID)
	require.Equal(t, "", got[0].Version)
	require.Equal(t, models.StatusUnknown, got[0].Status)
	require.Equal(t, []string{"a", "2"}, got[0].Highlights)
}

func TestHideSet_ZeroValue(t *testing.T) {
	var h HideSet
	require.False(t, h.Hidden("macro-creator"))
	require.Equal(t, 3, DefaultHideSet().Len())
}
