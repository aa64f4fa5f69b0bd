package components

import (
	"html/template"
	"strings"

	"github.com/aigit-dev/examboard/internal/models"
	"github.com/aigit-dev/examboard/internal/store"
)

// pageCSS is the unscoped document base: everything else is per-unit.
const pageCSS = `
* { box-sizing: border-box; }
body { background: #0d1117; color: #c9d1d9; font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; margin: 0; padding: 24px; }
main { display: flex; flex-direction: column; gap: 16px; max-width: 1080px; margin: 0 auto; }
`

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>{{.Title}}</title>
<style>{{.Styles}}</style>
</head>
<body>
<main>
{{range .Sections}}{{.}}
{{end}}</main>
</body>
</html>
`))

// App is the root of the component tree. It renders the header, status
// banner, and load controls itself, and composes the child units into the
// full page.
type App struct {
	unit
	title string

	kpis   *KPIBar
	chart  *Chart
	users  *UserTable
	drawer *Drawer
}

// NewApp builds the component tree with the given page title.
func NewApp(title string) *App {
	return &App{
		title:  title,
		kpis:   NewKPIBar(),
		chart:  NewChart(),
		users:  NewUserTable(),
		drawer: NewDrawer(),
		unit: unit{
			name: "app",
			css: `
header { display: flex; justify-content: space-between; align-items: baseline; }
header h1 { font-size: 20px; margin: 0; }
header .repo { color: #8b949e; font-size: 13px; }
.banner { border-radius: 8px; padding: 10px 16px; font-size: 13px; }
.banner.error { background: #2d1214; border: 1px solid #f85149; color: #f85149; }
.banner.idle { background: #1b2230; border: 1px solid #30363d; color: #8b949e; }
.banner.loading { background: #1b2230; border: 1px solid #30363d; color: #58a6ff; }
.loadbar { display: flex; gap: 12px; align-items: center; font-size: 13px; color: #8b949e; }
.loadbar form { display: inline-flex; gap: 6px; align-items: center; }
.loadbar button { background: #21262d; color: #c9d1d9; border: 1px solid #30363d; border-radius: 6px; padding: 4px 12px; cursor: pointer; }
`,
		},
	}
}

// Children returns the child units in render order.
func (a *App) Children() []Component {
	return []Component{a.kpis, a.chart, a.users, a.drawer}
}

// Mount subscribes the whole tree to the store and performs the initial
// render. Children subscribe before the root, so by the time the root's
// subtree is rebuilt on a signal every child has already re-rendered.
func (a *App) Mount(st *store.Store) func() {
	var unsubs []func()
	for _, child := range a.Children() {
		unsubs = append(unsubs, Mount(st, child))
	}
	unsubs = append(unsubs, Mount(st, a))
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Render rebuilds the root's own chrome: header, status banner, and the
// upload/reload controls.
func (a *App) Render(state models.AppState) {
	a.begin(state)

	a.printf(`<div class="%s">`, ScopeClass(a.name))
	a.printf(`<header><h1>%s</h1>`, esc(a.title))
	if state.Data != nil && state.Data.RepoID != "" {
		a.printf(`<span class="repo">%s</span>`, esc(state.Data.RepoID))
	}
	a.write(`</header>`)

	switch {
	case state.Status == models.StatusError && state.Error != "":
		a.printf(`<div class="banner error">%s</div>`, esc(state.Error))
	case state.Status == models.StatusIdle && state.Error != "":
		a.printf(`<div class="banner idle">%s</div>`, esc(state.Error))
	case state.Status == models.StatusLoading:
		a.write(`<div class="banner loading">Loading&hellip;</div>`)
	}

	a.write(`<div class="loadbar">`)
	a.printf(`<form method="post" action="%s" enctype="multipart/form-data">`, IntentUpload)
	a.write(`<input type="file" name="bundle" accept=".json,.gz,application/json"/>`)
	a.write(`<button type="submit">Load file</button></form>`)
	a.printf(`<form method="post" action="%s"><button type="submit">Reload</button></form>`, IntentReload)
	a.write(`</div></div>`)
}

// Page assembles the complete HTML document from the last render of every
// unit.
func (a *App) Page() string {
	var styles strings.Builder
	styles.WriteString(pageCSS)
	styles.WriteString(a.Styles())
	for _, child := range a.Children() {
		styles.WriteString(child.Styles())
	}

	sections := []template.HTML{template.HTML(a.HTML())}
	for _, child := range a.Children() {
		if h := child.HTML(); h != "" {
			sections = append(sections, template.HTML(h))
		}
	}

	var out strings.Builder
	err := pageTmpl.Execute(&out, struct {
		Title    string
		Styles   template.CSS
		Sections []template.HTML
	}{a.title, template.CSS(styles.String()), sections})
	if err != nil {
		// The template is static and the data pre-rendered; this cannot
		// fail at runtime, but keep the page serviceable if it ever does.
		return "<!doctype html><body>" + esc(err.Error()) + "</body>"
	}
	return out.String()
}
