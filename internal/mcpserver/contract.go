package mcpserver

// CatalogFormatContract describes the projects.json format that LLM
// consumers should follow when proposing catalog entries.
const CatalogFormatContract = `# Project Catalog Format

The catalog is a JSON array of project objects stored as ` + "`projects.json`" + `
next to the page's ` + "`index.html`" + `.

## Fields

| Field | Type | Notes |
|---|---|---|
| id | string | Stable identifier; also used as the hide-list key. |
| name | string | Display name. Defaults to "Untitled". |
| description | string | One or two sentences. |
| tags | string[] | Free-form; blank entries are dropped. |
| status | string | stable, in-progress, planned, archived, private. Anything else sorts last. |
| category | string | macro or installer. Defaults to macro. |
| version | string | Free-form, e.g. "1.4.0". |
| lastUpdated | string | ISO-8601 date or datetime. |
| repoUrl | string or null | Repository link. |
| demoUrl | string or null | Live demo link. |
| highlights | string[] | Short bullet points; the detail view shows the first 8. |

## Rules

1. Entries with a missing id are identified by name instead.
2. When the same id (case-insensitive) appears twice, the later entry wins.
3. Local entries always win over repositories discovered on GitHub.
4. Non-object array elements are ignored.
`
