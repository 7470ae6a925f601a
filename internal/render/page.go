package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/starford/showcase/internal/models"
)

// PageData is everything the catalog page needs for its first paint.
type PageData struct {
	Title      string
	Theme      string
	Filter     models.FilterState
	Statuses   []string
	Categories []string
	Chips      template.HTML
	Grid       template.HTML
	Count      string
	Summary    string
	Featured   *FeaturedView
	Modal      *ModalParts
	// Interactive adds the script that forwards events to the preview server.
	Interactive bool
}

const pageTmpl = `<!doctype html>
<html lang="en" data-theme="{{.Theme}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
:root{--bg:#0f1115;--fg:#e8e8ea;--muted:#9aa0aa;--card:#181b22;--accent:#5aa9ff}
[data-theme="light"]{--bg:#f7f7f9;--fg:#15171c;--muted:#5c6370;--card:#fff;--accent:#1f6feb}
body{margin:0;font-family:system-ui,sans-serif;background:var(--bg);color:var(--fg)}
main{max-width:1100px;margin:0 auto;padding:24px}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(300px,1fr));gap:16px}
.project-card,.tile,.release-card{background:var(--card);border-radius:12px;padding:16px}
.project-more{display:none}.is-expanded .project-more{display:block}
.pill,.chip,.badge{display:inline-block;border-radius:999px;padding:2px 10px;margin:2px;border:1px solid var(--muted);font-size:12px}
.chip.is-active{background:var(--accent);color:#fff}
.muted{color:var(--muted)}.mono{font-family:ui-monospace,monospace}
.modal{display:none;position:fixed;inset:0;background:rgba(0,0,0,.6)}.modal.is-open{display:block}
.modal-dialog{background:var(--card);max-width:640px;margin:8vh auto;padding:20px;border-radius:12px}
.toast{position:fixed;bottom:16px;right:16px}
a{color:var(--accent)}
</style>
</head>
<body>
<main>
<header class="page-head">
  <h1>{{.Title}}</h1>
  <button class="btn ghost" type="button" id="themeToggle">Toggle theme</button>
</header>
{{with .Featured}}{{featured .}}{{end}}
<section class="filters" aria-label="Filters">
  <input type="search" id="projectSearch" placeholder="Search projects" value="{{.Filter.Query}}">
  <select id="statusFilter">
    {{- range .Statuses}}<option value="{{.}}"{{if eq . $.Filter.Status}} selected{{end}}>{{if eq . "all"}}All statuses{{else}}{{.}}{{end}}</option>{{end -}}
  </select>
  <select id="categoryFilter">
    {{- range .Categories}}<option value="{{.}}"{{if eq . $.Filter.Category}} selected{{end}}>{{if eq . "all"}}All categories{{else}}{{.}}{{end}}</option>{{end -}}
  </select>
  <select id="sortProjects">
    <option value="status"{{if eq .Filter.Sort "status"}} selected{{end}}>Status</option>
    <option value="recent"{{if eq .Filter.Sort "recent"}} selected{{end}}>Recently updated</option>
    <option value="name"{{if eq .Filter.Sort "name"}} selected{{end}}>Name</option>
  </select>
  <button class="btn ghost" type="button" id="clearFilters">Clear</button>
  <div class="chips" id="tagFilters">{{.Chips}}</div>
</section>
<p class="muted"><span id="projectsCount">{{.Count}}</span> · <span id="filterSummary">{{.Summary}}</span></p>
<section class="grid" id="projectsGrid">{{.Grid}}</section>
</main>
<div class="modal{{if .Modal}} is-open{{end}}" id="projectModal" aria-hidden="{{if .Modal}}false{{else}}true{{end}}">
  <div class="modal-backdrop" data-modal-close="true"></div>
  <div class="modal-dialog" role="dialog" aria-modal="true" aria-labelledby="projectModalTitle">
    <button class="btn ghost" type="button" id="modalClose" data-modal-close="true">Close</button>
    <h2 id="projectModalTitle">{{with .Modal}}{{.Title}}{{end}}</h2>
    <div id="projectModalBody">{{with .Modal}}{{.Body}}{{end}}</div>
    <div id="projectModalActions">{{with .Modal}}{{.Actions}}{{end}}</div>
  </div>
</div>
<div class="toast" id="toast" role="status" aria-live="polite"></div>
{{if .Interactive}}<script>` + glueScript + `</script>{{end}}
</body>
</html>
`

// glueScript forwards DOM events to /ui/dispatch and applies the returned patches.
const glueScript = `
(function () {
  const post = (path, body) => fetch(path, {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify(body || {}),
  }).then((r) => (r.ok ? r.json() : Promise.reject(r.status)));
  const byId = (id) => document.getElementById(id);
  const toast = (msg) => { const t = byId('toast'); if (t) { t.textContent = msg; setTimeout(() => { t.textContent = ''; }, 1600); } };
  const apply = (patches) => (patches || []).forEach((p) => {
    const el = byId(p.target);
    if (!el) return;
    if (p.op === 'html') el.innerHTML = p.value;
    else if (p.op === 'text') el.textContent = p.value;
    else if (p.op === 'value') { if (el.value !== p.value) el.value = p.value; }
    else if (p.op === 'open') { el.classList.toggle('is-open', !!p.open); el.setAttribute('aria-hidden', String(!p.open)); }
  });
  const send = (ev) => post('/ui/dispatch', ev).then((r) => apply(r.patches)).catch(() => toast('Update failed'));
  const bind = (id, kind, type) => { const el = byId(id); if (el) el.addEventListener(type, () => send({kind: kind, value: el.value})); };
  bind('projectSearch', 'search', 'input');
  bind('statusFilter', 'status', 'change');
  bind('categoryFilter', 'category', 'change');
  bind('sortProjects', 'sort', 'change');
  byId('clearFilters')?.addEventListener('click', () => send({kind: 'clear'}));
  byId('tagFilters')?.addEventListener('click', (e) => {
    const b = e.target.closest('button[data-tag]');
    if (b) send({kind: 'tag', value: b.dataset.tag});
  });
  byId('projectsGrid')?.addEventListener('click', (e) => {
    const b = e.target.closest('button[data-action]');
    if (b && (b.dataset.action === 'details' || b.dataset.action === 'expand')) send({kind: b.dataset.action, projectId: b.dataset.projectId});
  });
  byId('projectModal')?.addEventListener('click', (e) => {
    const c = e.target.closest('[data-action="copy"]');
    if (c) { navigator.clipboard?.writeText(c.dataset.copy).then(() => toast('Copied')).catch(() => toast('Copy failed')); return; }
    if (e.target.closest('[data-modal-close="true"]')) send({kind: 'close-modal'});
  });
  document.addEventListener('keydown', (e) => {
    if (e.key === 'Escape' && document.querySelector('#projectModal.is-open')) send({kind: 'key', value: 'Escape'});
  });
  byId('themeToggle')?.addEventListener('click', () => post('/ui/theme').then((r) => document.documentElement.setAttribute('data-theme', r.theme)).catch(() => {}));
  if (window.EventSource) new EventSource('/api/events').addEventListener('catalog.updated', () => send({kind: 'refresh'}));
})();
`

var pageT = template.Must(template.New("page").Funcs(template.FuncMap{"featured": FeaturedHTML}).Parse(pageTmpl))

// Page writes the full catalog document.
func Page(w io.Writer, data PageData) error {
	if data.Title == "" {
		data.Title = "Projects"
	}
	if data.Theme == "" {
		data.Theme = "dark"
	}
	if err := pageT.Execute(w, data); err != nil {
		return fmt.Errorf("render: page: %w", err)
	}
	return nil
}
