package ui

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"slices"
	"strings"

	"github.com/starford/showcase/internal/apperr"
	"github.com/starford/showcase/internal/catalog"
	"github.com/starford/showcase/internal/kvstore"
	"github.com/starford/showcase/internal/models"
	"github.com/starford/showcase/internal/render"
)

// FiltersKey is the store key holding the last-used FilterState.
const FiltersKey = "bfs_filters"

// Status selector options, in display order. Statuses outside this list
// that occur in the collection are appended after them.
var statusOptions = []string{
	models.FilterAll,
	models.StatusStable,
	models.StatusInProgress,
	models.StatusPlanned,
	models.StatusArchived,
	models.StatusPrivate,
	models.StatusUnknown,
}

// Controller owns the collection and the page state for one session.
// It is not safe for concurrent use.
type Controller struct {
	projects   []models.Project
	tags       []string
	statuses   []string
	categories []string
	state      State
	store      kvstore.Store
	handles    Handles
	logger     *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithStore persists filters to kv. Without a store nothing is remembered.
func WithStore(kv kvstore.Store) Option {
	return func(c *Controller) { c.store = kv }
}

// WithHandles overrides the element ids Render writes to.
func WithHandles(h Handles) Option {
	return func(c *Controller) { c.handles = h }
}

// WithLogger sets the logger for best-effort store failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// NewController builds a controller over projects and restores saved filters.
func NewController(projects []models.Project, opts ...Option) *Controller {
	c := &Controller{
		projects: projects,
		state:    DefaultState(),
		handles:  DefaultHandles(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.tags = catalog.Tags(projects)
	c.statuses = statusesFor(projects)
	c.categories = catalog.Categories(projects)
	c.state.Filter = c.restore()
	return c
}

func (c *Controller) restore() models.FilterState {
	def := models.DefaultFilterState()
	if c.store == nil {
		return def
	}
	raw, ok, err := c.store.Get(FiltersKey)
	if err != nil {
		c.logger.Warn("failed to read saved filters", slog.String("error", err.Error()))
		return def
	}
	if !ok {
		return def
	}
	st := def
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		c.logger.Warn("ignoring unreadable saved filters", slog.String("error", err.Error()))
		return def
	}
	if err := st.Validate(); err != nil {
		c.logger.Warn("ignoring invalid saved filters", slog.String("error", err.Error()))
		return def
	}
	return st
}

// persist saves the filters, or forgets them once they are back to the
// defaults so a cleared page starts from whatever defaults apply next time.
func (c *Controller) persist() {
	if c.store == nil {
		return
	}
	if c.state.Filter.IsDefault() {
		if err := c.store.Delete(FiltersKey); err != nil {
			c.logger.Warn("failed to forget filters", slog.String("error", err.Error()))
		}
		return
	}
	data, err := json.Marshal(c.state.Filter)
	if err != nil {
		c.logger.Warn("failed to encode filters", slog.String("error", err.Error()))
		return
	}
	if err := c.store.Set(FiltersKey, string(data)); err != nil {
		c.logger.Warn("failed to save filters", slog.String("error", err.Error()))
	}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Projects returns the full collection the controller was built with.
func (c *Controller) Projects() []models.Project {
	return c.projects
}

// Handles returns the element ids Render writes to.
func (c *Controller) Handles() Handles {
	return c.handles
}

// Statuses returns the status selector options.
func (c *Controller) Statuses() []string {
	return c.statuses
}

func statusesFor(projects []models.Project) []string {
	out := slices.Clone(statusOptions)
	for _, s := range catalog.Statuses(projects) {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// Categories returns the category selector options, "all" first.
func (c *Controller) Categories() []string {
	return append([]string{models.FilterAll}, c.categories...)
}

// Dispatch applies ev and returns the resulting view. Events targeting an
// unknown project leave the state unchanged. Projects are addressed by Key,
// so entries without an id are reachable through their name.
func (c *Controller) Dispatch(ev Event) (View, error) {
	if !Known(ev.Kind) {
		return c.View(), fmt.Errorf("ui: dispatch %q: %w", ev.Kind, apperr.ErrInvalidEvent)
	}
	if ev.Kind == KindExpand || ev.Kind == KindDetails {
		p, ok := catalog.FindKey(c.projects, ev.ProjectID)
		if !ok {
			return c.View(), nil
		}
		ev.ProjectID = p.Key()
	}
	c.state = Reduce(c.state, ev)
	if AffectsFilter(ev.Kind) {
		c.persist()
	}
	return c.View(), nil
}

// View is a State projected over the collection.
type View struct {
	Filter  models.FilterState
	Grid    template.HTML
	Chips   template.HTML
	Count   string
	Summary string
	Shown   int
	Total   int
	Modal   *render.ModalParts
	Failed  bool
}

// View projects the current state.
func (c *Controller) View() View {
	visible := catalog.Visible(c.projects, c.state.Filter)
	v := View{
		Filter:  c.state.Filter,
		Grid:    render.Grid(visible, c.state.ExpandedID),
		Chips:   render.TagChips(append([]string{models.FilterAll}, c.tags...), c.state.Filter.Tag),
		Count:   CountText(len(visible), len(c.projects)),
		Summary: Summary(c.state.Filter),
		Shown:   len(visible),
		Total:   len(c.projects),
	}
	if c.state.ModalID != "" {
		if p, ok := catalog.FindKey(c.projects, c.state.ModalID); ok {
			m := render.Modal(p)
			v.Modal = &m
		}
	}
	return v
}

// Render writes the current view to s.
func (c *Controller) Render(s Surface) {
	c.View().Draw(s, c.handles)
}

// Page builds the data for a full page render of the current view.
func (c *Controller) Page(theme string, interactive bool) render.PageData {
	v := c.View()
	data := render.PageData{
		Theme:       theme,
		Filter:      v.Filter,
		Statuses:    c.Statuses(),
		Categories:  c.Categories(),
		Chips:       v.Chips,
		Grid:        v.Grid,
		Count:       v.Count,
		Summary:     v.Summary,
		Modal:       v.Modal,
		Interactive: interactive,
	}
	if p, ok := catalog.Featured(c.projects); ok {
		f := render.Featured(p)
		data.Featured = &f
	}
	return data
}

// Draw writes v through h.
func (v View) Draw(s Surface, h Handles) {
	if v.Failed {
		s.SetText(h.Count, v.Count)
		s.SetHTML(h.Grid, v.Grid)
		return
	}
	s.SetValue(h.Search, v.Filter.Query)
	s.SetValue(h.Status, v.Filter.Status)
	s.SetValue(h.Category, v.Filter.Category)
	s.SetValue(h.Sort, v.Filter.Sort)
	s.SetHTML(h.Tags, v.Chips)
	s.SetHTML(h.Grid, v.Grid)
	s.SetText(h.Count, v.Count)
	s.SetText(h.Summary, v.Summary)
	if v.Modal == nil {
		s.SetOpen(h.Modal, false)
		return
	}
	s.SetText(h.ModalTitle, v.Modal.Title)
	s.SetHTML(h.ModalBody, v.Modal.Body)
	s.SetHTML(h.ModalAction, v.Modal.Actions)
	s.SetOpen(h.Modal, true)
}

// FailureCount is the count text of the terminal failure view.
const FailureCount = "Projects failed to load."

// FailureView is shown when neither catalog source produced a result.
func FailureView() View {
	return View{
		Filter: models.DefaultFilterState(),
		Grid:   render.Failure(),
		Count:  FailureCount,
		Failed: true,
	}
}

// RenderFailure draws the terminal failure view.
func RenderFailure(s Surface, h Handles) {
	FailureView().Draw(s, h)
}

// CountText formats the "<shown> / <total> shown" counter.
func CountText(shown, total int) string {
	return fmt.Sprintf("%d / %d shown", shown, total)
}

// Summary describes the active filters in one line.
func Summary(f models.FilterState) string {
	if f.IsDefault() {
		return "Showing all projects"
	}
	var parts []string
	if q := strings.TrimSpace(f.Query); q != "" {
		parts = append(parts, "Search: “"+q+"”")
	}
	if f.Status != models.FilterAll {
		parts = append(parts, "Status: "+f.Status)
	}
	if f.Category != models.FilterAll {
		parts = append(parts, "Category: "+f.Category)
	}
	if f.Tag != models.FilterAll {
		parts = append(parts, "Tag: "+f.Tag)
	}
	switch f.Sort {
	case models.SortRecent:
		parts = append(parts, "Sorted by last update")
	case models.SortName:
		parts = append(parts, "Sorted by name")
	}
	if len(parts) == 0 {
		return "Showing all projects"
	}
	return strings.Join(parts, " · ")
}
