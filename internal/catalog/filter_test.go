package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starford/showcase/internal/models"
)

func sampleCollection() []models.Project {
	return []models.Project{
		{ID: "forge", Name: "Forge Macro — Auto Mine v1", Description: "Mines ore.", Tags: []string{"Macros", "Forge"}, Status: "in-progress", Category: "macro", LastUpdated: "2025-09-01"},
		{ID: "installer", Name: "Main Macro Installer", Description: "One installer.", Tags: []string{"Installer", "Windows"}, Status: "stable", Category: "installer", LastUpdated: "2025-12-01"},
		{ID: "rivals", Name: "rivals AFK", Description: "AFK macro for Rivals.", Tags: []string{"Macros", "Rivals"}, Status: "stable", Category: "macro", LastUpdated: "not a date"},
		{ID: "adopt", Name: "Adopt Me Task Macro", Description: "Tasks.", Tags: []string{"Macros", "Adopt Me"}, Status: "planned", Category: "macro"},
		{ID: "zed", Name: "Zed", Description: "Old thing.", Tags: []string{"GitHub"}, Status: "archived", Category: "macro", LastUpdated: "2024-01-05T10:00:00Z"},
	}
}

func TestVisible_DefaultStateKeepsAllInStatusOrder(t *testing.T) {
	got := Visible(sampleCollection(), models.DefaultFilterState())
	require.Equal(t, []string{"Main Macro Installer", "rivals AFK", "Forge Macro — Auto Mine v1", "Adopt Me Task Macro", "Zed"}, names(got))
}

func TestVisible_QueryMatchesNameDescriptionAndTags(t *testing.T) {
	st := models.DefaultFilterState()
	st.Query = "  forge "
	got := Visible(sampleCollection(), st)
	require.Equal(t, []string{"Forge Macro — Auto Mine v1"}, names(got))

	st.Query = "ADOPT ME"
	require.Equal(t, []string{"Adopt Me Task Macro"}, names(Visible(sampleCollection(), st)))

	st.Query = "windows"
	require.Equal(t, []string{"Main Macro Installer"}, names(Visible(sampleCollection(), st)))
}

func TestVisible_ClausesAreANDed(t *testing.T) {
	st := models.DefaultFilterState()
	st.Tag = "Macros"
	st.Status = "stable"
	require.Equal(t, []string{"rivals AFK"}, names(Visible(sampleCollection(), st)))

	st = models.DefaultFilterState()
	st.Category = "installer"
	require.Equal(t, []string{"Main Macro Installer"}, names(Visible(sampleCollection(), st)))
}

func TestVisible_UnknownTagYieldsNothing(t *testing.T) {
	st := models.DefaultFilterState()
	st.Tag = "no-such-tag"
	require.Empty(t, Visible(sampleCollection(), st))
}

func TestVisible_SortByName(t *testing.T) {
	st := models.DefaultFilterState()
	st.Sort = models.SortName
	got := Visible(sampleCollection(), st)
	for i := 1; i < len(got); i++ {
		require.LessOrEqual(t, CompareNames(got[i-1].Name, got[i].Name), 0, "%q before %q", got[i-1].Name, got[i].Name)
	}
	// Collation ignores case at the primary level.
	require.Equal(t, []string{"Adopt Me Task Macro", "Forge Macro — Auto Mine v1", "Main Macro Installer", "rivals AFK", "Zed"}, names(got))
}

func TestVisible_SortByRecent(t *testing.T) {
	st := models.DefaultFilterState()
	st.Sort = models.SortRecent
	got := Visible(sampleCollection(), st)
	require.Equal(t, "Main Macro Installer", got[0].Name)
	for i := 1; i < len(got); i++ {
		require.False(t, updatedAt(got[i]).After(updatedAt(got[i-1])))
	}
	// Missing and unparseable dates sink to the end.
	tail := names(got[len(got)-2:])
	require.ElementsMatch(t, []string{"rivals AFK", "Adopt Me Task Macro"}, tail)
}

func TestVisible_DoesNotMutateInput(t *testing.T) {
	all := sampleCollection()
	before := names(all)
	st := models.DefaultFilterState()
	st.Sort = models.SortName
	_ = Visible(all, st)
	require.Equal(t, before, names(all))
}

func TestTags_DedupedAndSorted(t *testing.T) {
	require.Equal(t, []string{"Adopt Me", "Forge", "GitHub", "Installer", "Macros", "Rivals", "Windows"}, Tags(sampleCollection()))
	require.Equal(t, []string{"installer", "macro"}, Categories(sampleCollection()))
}

func TestFindAndFeatured(t *testing.T) {
	all := sampleCollection()
	p, ok := Find(all, "rivals")
	require.True(t, ok)
	require.Equal(t, "rivals AFK", p.Name)
	_, ok = Find(all, "RIVALS")
	require.False(t, ok)

	f, ok := Featured(all)
	require.True(t, ok)
	require.Equal(t, "installer", f.ID)

	f, ok = Featured(all[2:])
	require.True(t, ok)
	require.Equal(t, "rivals", f.ID)

	_, ok = Featured(nil)
	require.False(t, ok)
}

func TestFindKey_FallsBackToName(t *testing.T) {
	all := []models.Project{
		{ID: "Rivals", Name: "Rivals AFK"},
		{Name: "No Id Macro"},
	}
	p, ok := FindKey(all, "rivals")
	require.True(t, ok)
	require.Equal(t, "Rivals", p.ID)

	p, ok = FindKey(all, "No Id Macro")
	require.True(t, ok)
	require.Equal(t, "No Id Macro", p.Name)

	_, ok = FindKey(all, "")
	require.False(t, ok)
}

func TestParseAndFormatDate(t *testing.T) {
	require.Equal(t, "Dec 1, 2025", FormatDate("2025-12-01"))
	require.Equal(t, "Jan 5, 2024", FormatDate("2024-01-05T10:00:00Z"))
	require.Equal(t, NoDate, FormatDate(""))
	require.Equal(t, NoDate, FormatDate("yesterday"))
	_, ok := ParseDate("2025-11-28T08:15:00.123Z")
	require.True(t, ok)
}
