package components

import (
	"github.com/aigit-dev/examboard/internal/models"
	"github.com/aigit-dev/examboard/internal/selectors"
)

// KPIBar shows the top-level aggregates: transcript count, distinct users,
// pass rate, average score, and hallucination flag count.
type KPIBar struct {
	unit
}

func NewKPIBar() *KPIBar {
	return &KPIBar{unit: unit{
		name: "kpis",
		css: `
:scope { display: flex; gap: 12px; flex-wrap: wrap; }
.card { background: #161b22; border: 1px solid #30363d; border-radius: 8px; padding: 12px 18px; min-width: 120px; }
.card .label { color: #8b949e; font-size: 12px; text-transform: uppercase; letter-spacing: .05em; }
.card .value { font-size: 24px; font-weight: 600; margin-top: 4px; }
.card .value.pass { color: #3fb950; }
.card .value.fail { color: #f85149; }
.card .value.flag { color: #d29922; }
`,
	}}
}

func (c *KPIBar) Render(state models.AppState) {
	c.begin(state)
	k := selectors.KPIs(state.Entries())

	c.printf(`<section class="%s">`, ScopeClass(c.name))
	c.card("Transcripts", "%d", k.Total, "")
	c.card("Users", "%d", k.Users, "")
	c.card("Passed", "%d", k.Pass, "pass")
	c.card("Failed", "%d", k.Fail, "fail")
	c.printf(`<div class="card"><div class="label">Pass rate</div><div class="value">%.0f%%</div></div>`, k.PassRate*100)
	c.printf(`<div class="card"><div class="label">Avg score</div><div class="value">%.2f</div></div>`, k.AvgScore)
	c.card("Flags", "%d", k.Flags, "flag")
	c.write(`</section>`)
}

func (c *KPIBar) card(label, format string, n int, class string) {
	cls := "value"
	if class != "" {
		cls += " " + class
	}
	c.printf(`<div class="card"><div class="label">%s</div><div class="%s">`, esc(label), cls)
	c.printf(format, n)
	c.write(`</div></div>`)
}
