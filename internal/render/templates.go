package render

const cardTmpl = `<article class="project-card{{if .Expanded}} is-expanded{{end}}" data-project-id="{{.P.Key}}">
  <div class="project-top">
    <h3 class="project-name">{{.P.Name}}</h3>
    <span class="badge">{{status .P}}</span>
  </div>
  <div class="tag-row" aria-label="Meta">
    {{- with .P.Category}}<span class="pill">{{.}}</span>{{end}}
    {{- with .P.Version}}<span class="pill">Version {{.}}</span>{{end}}
    {{- with .P.LastUpdated}}<span class="pill">Updated {{formatDate .}}</span>{{end -}}
  </div>
  <p class="project-desc">{{.P.Description}}</p>
  <div class="tag-row" aria-label="Tags">{{range first 4 .P.Tags}}<span class="pill">{{.}}</span>{{end}}</div>
  <div class="project-actions">
    <div class="project-btns">
      <button class="btn small" type="button" data-action="details" data-project-id="{{.P.Key}}">Details</button>
      <button class="btn ghost small" type="button" data-action="expand" data-project-id="{{.P.Key}}" aria-expanded="{{.Expanded}}">{{if .Expanded}}Hide details{{else}}See more{{end}}</button>
    </div>
    <div class="project-links">
      {{- with .P.RepoURL}}<a class="link" href="{{.}}" target="_blank" rel="noreferrer">Repo</a>{{end}}
      {{- with .P.DemoURL}} <span class="sep" aria-hidden="true">·</span> <a class="link" href="{{.}}" target="_blank" rel="noreferrer">Demo</a>{{end -}}
    </div>
  </div>
  <div class="project-more" aria-hidden="{{not .Expanded}}">
    <div class="project-more-meta">
      <div><div class="project-more-label">Status</div><div class="project-more-value">{{status .P}}</div></div>
      <div><div class="project-more-label">Version</div><div class="project-more-value">{{or .P.Version "—"}}</div></div>
      <div><div class="project-more-label">Updated</div><div class="project-more-value">{{formatDate .P.LastUpdated}}</div></div>
    </div>
    <div class="project-more-body">
      {{- if .P.Highlights}}<ul class="project-more-list">{{range .P.Highlights}}<li>{{.}}</li>{{end}}</ul>
      {{- else}}<p class="project-more-empty">More details coming soon.</p>{{end}}
      {{- with .P.RepoURL}}<a class="link" href="{{.}}" target="_blank" rel="noreferrer">Open repository</a>{{end -}}
    </div>
  </div>
</article>
`

const modalBodyTmpl = `<div class="modal-meta">
  <span class="badge">{{status .}}</span>
  {{- with .Category}}<span class="pill">{{.}}</span>{{end}}
  {{- with .Version}}<span class="pill">Version {{.}}</span>{{end}}
  <span class="mono">{{.ID}}</span>
</div>
<div class="modal-desc">{{.Description}}</div>
{{- with .LastUpdated}}
<div class="muted">Last updated: {{formatDate .}}</div>
{{- end}}
{{- if .Tags}}
<div class="tag-row" aria-label="Tags">{{range .Tags}}<span class="pill">{{.}}</span>{{end}}</div>
{{- end}}
{{- if .Highlights}}
<div><div class="muted">Highlights</div><ul>{{range first 8 .Highlights}}<li>{{.}}</li>{{end}}</ul></div>
{{- end}}
`

const modalActionsTmpl = `
{{- with .DemoURL}}<a class="btn primary" href="{{.}}" target="_blank" rel="noreferrer">Open demo</a>{{end}}
{{- with .RepoURL}}<a class="btn" href="{{.}}" target="_blank" rel="noreferrer">Open repo</a>
<button class="btn" type="button" data-action="copy" data-copy="{{.}}">Copy repo URL</button>{{end -}}
`

const chipsTmpl = `{{range .Tags}}<button class="chip{{if eq . $.Active}} is-active{{end}}" type="button" data-tag="{{.}}">{{.}}</button>{{end}}`

const emptyTmpl = `<article class="tile empty-state">
  <h3>No projects match</h3>
  <p>Try a different search, or clear the filters.</p>
</article>
`

const failureTmpl = `<article class="tile">
  <h3>Couldn’t load projects</h3>
  <p>Please ensure <span class="mono">projects.json</span> exists next to <span class="mono">index.html</span>.</p>
</article>
`

const featuredTmpl = `<div class="release-card" id="featuredRelease">
  <div class="release-head">
    <span class="release-version" id="releaseVersion">{{.Version}}</span>
    <span class="release-date" id="releaseDate">{{.Date}}</span>
  </div>
  <p class="release-notes" id="releaseNotes">{{.Notes}}</p>
  <div class="release-actions">
    <a class="btn primary" id="releasePrimary" href="{{.ReleaseURL}}">Download latest</a>
    <a class="btn ghost" id="releaseRepo" href="{{.RepoURL}}">View repository</a>
  </div>
</div>
`
