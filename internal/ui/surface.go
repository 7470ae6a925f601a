package ui

import (
	"html/template"
)

// Surface is where a View is drawn. In the preview server it is a
// PatchRecorder whose patches the page script applies to the DOM.
type Surface interface {
	SetHTML(id string, html template.HTML)
	SetText(id, text string)
	SetValue(id, value string)
	SetOpen(id string, open bool)
}

// Handles names the page elements the controller reads and writes.
type Handles struct {
	Search      string
	Status      string
	Category    string
	Sort        string
	Clear       string
	Tags        string
	Grid        string
	Count       string
	Summary     string
	Modal       string
	ModalTitle  string
	ModalBody   string
	ModalAction string
	ModalClose  string
	Toast       string
}

// DefaultHandles matches the element ids of the rendered page.
func DefaultHandles() Handles {
	return Handles{
		Search:      "projectSearch",
		Status:      "statusFilter",
		Category:    "categoryFilter",
		Sort:        "sortProjects",
		Clear:       "clearFilters",
		Tags:        "tagFilters",
		Grid:        "projectsGrid",
		Count:       "projectsCount",
		Summary:     "filterSummary",
		Modal:       "projectModal",
		ModalTitle:  "projectModalTitle",
		ModalBody:   "projectModalBody",
		ModalAction: "projectModalActions",
		ModalClose:  "modalClose",
		Toast:       "toast",
	}
}

// Patch operations.
const (
	OpHTML  = "html"
	OpText  = "text"
	OpValue = "value"
	OpOpen  = "open"
)

// Patch is a single DOM update.
type Patch struct {
	Target string `json:"target"`
	Op     string `json:"op"`
	Value  string `json:"value,omitempty"`
	Open   bool   `json:"open,omitempty"`
}

// PatchRecorder is a Surface that records patches in call order.
type PatchRecorder struct {
	Patches []Patch
}

func (r *PatchRecorder) SetHTML(id string, html template.HTML) {
	r.Patches = append(r.Patches, Patch{Target: id, Op: OpHTML, Value: string(html)})
}

func (r *PatchRecorder) SetText(id, text string) {
	r.Patches = append(r.Patches, Patch{Target: id, Op: OpText, Value: text})
}

func (r *PatchRecorder) SetValue(id, value string) {
	r.Patches = append(r.Patches, Patch{Target: id, Op: OpValue, Value: value})
}

func (r *PatchRecorder) SetOpen(id string, open bool) {
	r.Patches = append(r.Patches, Patch{Target: id, Op: OpOpen, Open: open})
}

// Find returns the last patch for target with op.
func (r *PatchRecorder) Find(target, op string) (Patch, bool) {
	for i := len(r.Patches) - 1; i >= 0; i-- {
		if p := r.Patches[i]; p.Target == target && p.Op == op {
			return p, true
		}
	}
	return Patch{}, false
}
