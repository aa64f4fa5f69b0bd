package components

import (
	"github.com/aigit-dev/examboard/internal/models"
	"github.com/aigit-dev/examboard/internal/selectors"
)

// UserTable lists per-author aggregates with a substring filter. Clicking a
// row dispatches the select-user intent, which opens the drill-down drawer.
type UserTable struct {
	unit
}

func NewUserTable() *UserTable {
	return &UserTable{unit: unit{
		name: "users",
		css: `
:scope { background: #161b22; border: 1px solid #30363d; border-radius: 8px; padding: 12px 18px; }
h2 { margin: 0 0 8px; font-size: 14px; color: #8b949e; font-weight: 500; }
form.filter { margin-bottom: 8px; }
form.filter input { background: #0d1117; color: #c9d1d9; border: 1px solid #30363d; border-radius: 6px; padding: 6px 10px; width: 260px; }
table { width: 100%; border-collapse: collapse; font-size: 13px; }
th { text-align: left; color: #8b949e; font-weight: 500; padding: 6px 8px; border-bottom: 1px solid #30363d; }
td { padding: 6px 8px; border-bottom: 1px solid #21262d; }
tr.selected td { background: #1f2937; }
td.num { text-align: right; font-variant-numeric: tabular-nums; }
.pass { color: #3fb950; }
.fail { color: #f85149; }
button.row { background: none; border: none; color: #58a6ff; cursor: pointer; padding: 0; font: inherit; }
.empty { color: #8b949e; font-size: 13px; padding: 16px 0; }
`,
	}}
}

func (c *UserTable) Render(state models.AppState) {
	c.begin(state)
	users := selectors.FilterUsers(selectors.AggregateUsers(state.Entries()), state.UserFilter)

	c.printf(`<section class="%s"><h2>Authors</h2>`, ScopeClass(c.name))
	c.printf(`<form class="filter" method="post" action="%s">`, IntentFilter)
	c.printf(`<input type="search" name="q" value="%s" placeholder="Filter by name or email" aria-label="Filter users"/>`, esc(state.UserFilter))
	c.write(`</form>`)

	if len(users) == 0 {
		c.write(`<div class="empty">No matching authors.</div></section>`)
		return
	}

	c.write(`<table><thead><tr><th>Author</th><th>Email</th><th class="num">Pass</th><th class="num">Fail</th><th class="num">Avg score</th><th>Last seen</th></tr></thead><tbody>`)
	for _, u := range users {
		cls := ""
		if u.Email == state.SelectedEmail {
			cls = ` class="selected"`
		}
		c.printf(`<tr%s><td><form method="post" action="%s">`, cls, IntentSelectUser)
		c.printf(`<input type="hidden" name="email" value="%s"/>`, esc(u.Email))
		c.printf(`<button class="row" type="submit">%s</button></form></td>`, esc(u.Name))
		c.printf(`<td>%s</td>`, esc(u.Email))
		c.printf(`<td class="num pass">%d</td><td class="num fail">%d</td>`, u.Passes, u.Fails)
		c.printf(`<td class="num">%.2f</td>`, u.AvgScore)
		c.printf(`<td>%s</td></tr>`, esc(u.LastSeenISO))
	}
	c.write(`</tbody></table></section>`)
}
