package ui

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/starford/showcase/internal/apperr"
	"github.com/starford/showcase/internal/kvstore"
	"github.com/starford/showcase/internal/models"
	"github.com/starford/showcase/internal/testutil"
)

func collection() []models.Project {
	return []models.Project{
		{ID: "auto-mine", Name: "Auto Mine", Description: "Mines.", Tags: []string{"macro", "mining"}, Status: "stable", Category: "macro", LastUpdated: "2024-03-01"},
		{ID: "installer", Name: "Installer", Description: "Installs.", Tags: []string{"setup"}, Status: "in-progress", Category: "installer", RepoURL: "https://github.com/x/installer"},
		{ID: "zeta", Name: "Zeta", Description: "Plans.", Tags: []string{"macro"}, Status: "planned", Category: "macro"},
	}
}

type brokenStore struct{}

func (brokenStore) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }
func (brokenStore) Set(string, string) error         { return errors.New("disk gone") }
func (brokenStore) Delete(string) error              { return errors.New("disk gone") }

func TestController_InitialView(t *testing.T) {
	c := NewController(collection())
	v := c.View()
	if v.Count != "3 / 3 shown" {
		t.Fatalf("Count = %q", v.Count)
	}
	if v.Summary != "Showing all projects" {
		t.Fatalf("Summary = %q", v.Summary)
	}
	if v.Modal != nil {
		t.Fatalf("modal open on first paint")
	}
	if got := strings.Count(string(v.Grid), "<article"); got != 3 {
		t.Fatalf("grid has %d cards, want 3", got)
	}
	if !strings.Contains(string(v.Chips), `data-tag="all"`) {
		t.Fatalf("chips missing the all chip: %s", v.Chips)
	}
}

func TestController_UnknownTagShowsEmptyState(t *testing.T) {
	c := NewController(collection())
	v, err := c.Dispatch(Event{Kind: KindTag, Value: "does-not-exist"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if v.Count != "0 / 3 shown" {
		t.Fatalf("Count = %q, want 0 / 3 shown", v.Count)
	}
	if !strings.Contains(string(v.Grid), "No projects match") {
		t.Fatalf("Grid = %s, want empty state", v.Grid)
	}
	if v.Summary != "Tag: does-not-exist" {
		t.Fatalf("Summary = %q", v.Summary)
	}
}

func TestController_FiltersRoundTripThroughStore(t *testing.T) {
	kv := kvstore.NewMemory()
	c := NewController(collection(), WithStore(kv))
	for _, ev := range []Event{
		{Kind: KindSearch, Value: "m"},
		{Kind: KindCategory, Value: "macro"},
		{Kind: KindSort, Value: "name"},
		{Kind: KindExpand, ProjectID: "zeta"},
	} {
		if _, err := c.Dispatch(ev); err != nil {
			t.Fatalf("Dispatch(%+v): %v", ev, err)
		}
	}
	before := c.View()

	next := NewController(collection(), WithStore(kv))
	after := next.View()
	if after.Filter != before.Filter {
		t.Fatalf("restored filter = %+v, want %+v", after.Filter, before.Filter)
	}
	if after.Count != before.Count {
		t.Fatalf("restored count = %q, want %q", after.Count, before.Count)
	}
	if next.State().ExpandedID != "" {
		t.Fatalf("expanded card was persisted")
	}
}

func TestController_ClearForgetsSavedFilters(t *testing.T) {
	db := testutil.TestDB(t)
	c := NewController(collection(), WithStore(db))
	if _, err := c.Dispatch(Event{Kind: KindTag, Value: "setup"}); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := db.Get(FiltersKey); !ok {
		t.Fatalf("tag filter was not saved")
	}

	if _, err := c.Dispatch(Event{Kind: KindClear}); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := db.Get(FiltersKey); ok {
		t.Fatalf("saved filters after clear = %q, want none", v)
	}
	if got := NewController(collection(), WithStore(db)).State().Filter; got != models.DefaultFilterState() {
		t.Fatalf("restored after clear = %+v, want defaults", got)
	}
}

func TestController_InvalidSavedFiltersUseDefaults(t *testing.T) {
	for _, raw := range []string{`not json`, `{"sort":"sideways"}`, `{"status":""}`} {
		kv := kvstore.NewMemory()
		if err := kv.Set(FiltersKey, raw); err != nil {
			t.Fatal(err)
		}
		c := NewController(collection(), WithStore(kv))
		if got := c.State().Filter; got != models.DefaultFilterState() {
			t.Errorf("restore(%s) = %+v, want defaults", raw, got)
		}
	}
}

func TestController_PartialSavedFiltersKeepDefaults(t *testing.T) {
	kv := kvstore.NewMemory()
	if err := kv.Set(FiltersKey, `{"q":"mine"}`); err != nil {
		t.Fatal(err)
	}
	c := NewController(collection(), WithStore(kv))
	want := models.DefaultFilterState()
	want.Query = "mine"
	if got := c.State().Filter; got != want {
		t.Fatalf("Filter = %+v, want %+v", got, want)
	}
}

func TestController_StoreFailuresAreIgnored(t *testing.T) {
	c := NewController(collection(), WithStore(brokenStore{}))
	v, err := c.Dispatch(Event{Kind: KindStatus, Value: "stable"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if v.Count != "1 / 3 shown" {
		t.Fatalf("Count = %q", v.Count)
	}
}

func TestController_UnknownProjectIgnored(t *testing.T) {
	c := NewController(collection())
	for _, kind := range []string{KindDetails, KindExpand} {
		if _, err := c.Dispatch(Event{Kind: kind, ProjectID: "ghost"}); err != nil {
			t.Fatalf("Dispatch(%s): %v", kind, err)
		}
	}
	if c.State() != DefaultState() {
		t.Fatalf("state changed: %+v", c.State())
	}
}

func TestController_UnknownKindIsInvalid(t *testing.T) {
	c := NewController(collection())
	_, err := c.Dispatch(Event{Kind: "teleport"})
	if !errors.Is(err, apperr.ErrInvalidEvent) {
		t.Fatalf("err = %v, want ErrInvalidEvent", err)
	}
}

func TestController_RenderModalLifecycle(t *testing.T) {
	c := NewController(collection())
	h := DefaultHandles()
	if _, err := c.Dispatch(Event{Kind: KindDetails, ProjectID: "installer"}); err != nil {
		t.Fatal(err)
	}
	var rec PatchRecorder
	c.Render(&rec)
	open, ok := rec.Find(h.Modal, OpOpen)
	if !ok || !open.Open {
		t.Fatalf("modal not opened: %+v", rec.Patches)
	}
	title, _ := rec.Find(h.ModalTitle, OpText)
	if title.Value != "Installer" {
		t.Fatalf("title = %q", title.Value)
	}
	actions, _ := rec.Find(h.ModalAction, OpHTML)
	if !strings.Contains(actions.Value, `data-copy="https://github.com/x/installer"`) {
		t.Fatalf("actions = %s", actions.Value)
	}

	if _, err := c.Dispatch(Event{Kind: KindKey, Value: KeyEscape}); err != nil {
		t.Fatal(err)
	}
	rec = PatchRecorder{}
	c.Render(&rec)
	open, _ = rec.Find(h.Modal, OpOpen)
	if open.Open {
		t.Fatalf("Escape did not close the modal")
	}
}

func TestController_NameOnlyProjectExpandsAndOpens(t *testing.T) {
	projects := append(collection(), models.Project{Name: "No Id Macro", Status: models.StatusUnknown})
	c := NewController(projects)

	v, err := c.Dispatch(Event{Kind: KindExpand, ProjectID: "no id macro"})
	if err != nil {
		t.Fatal(err)
	}
	if c.State().ExpandedID != "no id macro" {
		t.Fatalf("ExpandedID = %q", c.State().ExpandedID)
	}
	if got := strings.Count(string(v.Grid), "is-expanded"); got != 1 {
		t.Fatalf("expanded cards = %d, want 1", got)
	}

	v, err = c.Dispatch(Event{Kind: KindDetails, ProjectID: "No Id Macro"})
	if err != nil {
		t.Fatal(err)
	}
	if v.Modal == nil || v.Modal.Title != "No Id Macro" {
		t.Fatalf("modal = %+v, want No Id Macro", v.Modal)
	}

	v, _ = c.Dispatch(Event{Kind: KindExpand, ProjectID: "No Id Macro"})
	if strings.Contains(string(v.Grid), "is-expanded") {
		t.Fatalf("second expand did not collapse the card")
	}
}

func TestController_RenderUsesCustomHandles(t *testing.T) {
	h := DefaultHandles()
	h.Grid = "cards"
	c := NewController(collection(), WithHandles(h))
	var rec PatchRecorder
	c.Render(&rec)
	if _, ok := rec.Find("cards", OpHTML); !ok {
		t.Fatalf("grid not written to custom handle: %+v", rec.Patches)
	}
	if _, ok := rec.Find("projectsGrid", OpHTML); ok {
		t.Fatalf("default grid handle still written")
	}
}

func TestController_ExpandedCardRendered(t *testing.T) {
	c := NewController(collection())
	v, err := c.Dispatch(Event{Kind: KindExpand, ProjectID: "zeta"})
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(v.Grid), "is-expanded"); got != 1 {
		t.Fatalf("expanded cards = %d, want 1", got)
	}
}

func TestRenderFailure(t *testing.T) {
	var rec PatchRecorder
	h := DefaultHandles()
	RenderFailure(&rec, h)
	count, _ := rec.Find(h.Count, OpText)
	if count.Value != FailureCount {
		t.Fatalf("count = %q", count.Value)
	}
	grid, _ := rec.Find(h.Grid, OpHTML)
	if !strings.Contains(grid.Value, "projects.json") || !strings.Contains(grid.Value, "index.html") {
		t.Fatalf("grid = %s", grid.Value)
	}
}

func TestController_PageData(t *testing.T) {
	c := NewController(collection())
	data := c.Page(ThemeLight, true)
	if data.Featured == nil || data.Featured.Version != "Installer" {
		t.Fatalf("Featured = %+v, want installer project", data.Featured)
	}
	if got := data.Categories; len(got) != 3 || got[0] != "all" {
		t.Fatalf("Categories = %v", got)
	}
	if !data.Interactive || data.Theme != ThemeLight {
		t.Fatalf("data = %+v", data)
	}
}

func TestSummary(t *testing.T) {
	f := models.DefaultFilterState()
	f.Query = " mine "
	f.Status = "stable"
	f.Sort = "recent"
	want := "Search: “mine” · Status: stable · Sorted by last update"
	if got := Summary(f); got != want {
		t.Fatalf("Summary = %q, want %q", got, want)
	}

	f = models.DefaultFilterState()
	f.Query = `say "hi"	now`
	want = "Search: “say \"hi\"\tnow”"
	if got := Summary(f); got != want {
		t.Fatalf("Summary = %q, want %q", got, want)
	}
}

func TestController_StatusOptions(t *testing.T) {
	projects := append(collection(),
		models.Project{ID: "odd", Name: "Odd", Status: models.StatusUnknown},
		models.Project{ID: "beta", Name: "Beta", Status: "beta"},
	)
	c := NewController(projects)
	got := c.Statuses()
	if got[0] != models.FilterAll {
		t.Fatalf("Statuses()[0] = %q, want all", got[0])
	}
	if !slices.Contains(got, models.StatusUnknown) {
		t.Fatalf("Statuses = %v, want unknown selectable", got)
	}
	if got[len(got)-1] != "beta" {
		t.Fatalf("Statuses = %v, want extra status appended", got)
	}

	v, err := c.Dispatch(Event{Kind: KindStatus, Value: models.StatusUnknown})
	if err != nil {
		t.Fatal(err)
	}
	if v.Count != "1 / 5 shown" {
		t.Fatalf("Count = %q", v.Count)
	}
}

func TestTheme(t *testing.T) {
	kv := kvstore.NewMemory()
	if got := LoadTheme(kv, ThemeDark); got != ThemeDark {
		t.Fatalf("LoadTheme(empty) = %q", got)
	}
	if err := kv.Set(ThemeKey, "neon"); err != nil {
		t.Fatal(err)
	}
	if got := LoadTheme(kv, ThemeLight); got != ThemeLight {
		t.Fatalf("LoadTheme(neon) = %q", got)
	}
	got, err := ToggleTheme(kv, ThemeDark)
	if err != nil || got != ThemeLight {
		t.Fatalf("ToggleTheme = %q, %v", got, err)
	}
	if got := LoadTheme(kv, ThemeDark); got != ThemeLight {
		t.Fatalf("LoadTheme after toggle = %q", got)
	}
	if err := SaveTheme(kv, "neon"); err == nil {
		t.Fatalf("SaveTheme(neon) succeeded")
	}
	if got := LoadTheme(brokenStore{}, ThemeDark); got != ThemeDark {
		t.Fatalf("LoadTheme(broken) = %q", got)
	}
}
