package components

import (
	"github.com/aigit-dev/examboard/internal/models"
	"github.com/aigit-dev/examboard/internal/selectors"
)

// Drawer is the drill-down view for one author: their transcript history and
// the detail of the effectively selected transcript.
//
// Selection resolution: a stored commit that does not belong to the selected
// author (stale or absent) is displayed as if it were the author's most
// recent entry; the stored value itself is left alone.
type Drawer struct {
	unit
}

func NewDrawer() *Drawer {
	return &Drawer{unit: unit{
		name: "drawer",
		css: `
:scope { background: #161b22; border: 1px solid #30363d; border-radius: 8px; padding: 12px 18px; }
h2 { margin: 0; font-size: 14px; color: #c9d1d9; font-weight: 600; }
.head { display: flex; justify-content: space-between; align-items: center; margin-bottom: 8px; }
button.close { background: #21262d; color: #c9d1d9; border: 1px solid #30363d; border-radius: 6px; padding: 4px 12px; cursor: pointer; }
table.history { width: 100%; border-collapse: collapse; font-size: 13px; margin-bottom: 12px; }
table.history td { padding: 5px 8px; border-bottom: 1px solid #21262d; }
tr.current td { background: #1f2937; }
button.row { background: none; border: none; color: #58a6ff; cursor: pointer; padding: 0; font: inherit; font-family: ui-monospace, monospace; }
.badge { border-radius: 10px; padding: 1px 8px; font-size: 11px; }
.badge.pass { background: #12261e; color: #3fb950; }
.badge.fail { background: #2d1214; color: #f85149; }
.meta { color: #8b949e; font-size: 12px; margin-bottom: 10px; }
.flags { color: #d29922; font-size: 13px; margin: 8px 0; }
table.questions { width: 100%; border-collapse: collapse; font-size: 13px; }
table.questions th { text-align: left; color: #8b949e; font-weight: 500; padding: 5px 8px; border-bottom: 1px solid #30363d; }
table.questions td { padding: 5px 8px; border-bottom: 1px solid #21262d; vertical-align: top; }
td.num { text-align: right; font-variant-numeric: tabular-nums; }
.answer { background: #0d1117; border: 1px solid #21262d; border-radius: 6px; padding: 6px 10px; margin-top: 4px; }
.notes { color: #8b949e; font-size: 12px; }
form.answers { margin: 10px 0; }
form.answers button { background: #21262d; color: #c9d1d9; border: 1px solid #30363d; border-radius: 6px; padding: 4px 12px; cursor: pointer; }
`,
	}}
}

func (c *Drawer) Render(state models.AppState) {
	c.begin(state)
	if state.SelectedEmail == "" {
		return // drawer closed, no output
	}

	entries := state.Entries()
	history := selectors.EntriesForUser(entries, state.SelectedEmail)
	effective := selectors.EffectiveCommit(entries, state.SelectedEmail, state.SelectedCommit)

	c.printf(`<section class="%s"><div class="head">`, ScopeClass(c.name))
	c.printf(`<h2>%s</h2>`, esc(state.SelectedEmail))
	c.printf(`<form method="post" action="%s"><button class="close" type="submit">Close</button></form>`, IntentClose)
	c.write(`</div>`)

	if len(history) == 0 {
		c.write(`<div class="meta">No transcripts for this author.</div></section>`)
		return
	}

	c.write(`<table class="history"><tbody>`)
	for _, e := range history {
		cls := ""
		if e.Commit.SHA == effective {
			cls = ` class="current"`
		}
		c.printf(`<tr%s><td><form method="post" action="%s">`, cls, IntentSelectCommit)
		c.printf(`<input type="hidden" name="sha" value="%s"/>`, esc(e.Commit.SHA))
		c.printf(`<button class="row" type="submit">%s</button></form></td>`, esc(shortSHA(e.Commit.SHA)))
		c.printf(`<td>%s</td>`, esc(e.Commit.AuthorDateISO))
		c.printf(`<td>%s</td>`, esc(e.Commit.Subject))
		c.printf(`<td>%s</td>`, decisionBadge(e.Transcript.Decision))
		c.printf(`<td class="num">%.2f</td></tr>`, e.Transcript.Score.TotalScore)
	}
	c.write(`</tbody></table>`)

	if entry, ok := selectors.FindEntry(entries, state.SelectedEmail, effective); ok {
		c.renderDetail(entry, state.ShowAnswers)
	}
	c.write(`</section>`)
}

func (c *Drawer) renderDetail(e models.DashboardEntry, showAnswers bool) {
	t := e.Transcript
	c.printf(`<div class="meta">%s &middot; %s &middot; patch-id %s &middot; graded by %s/%s</div>`,
		esc(e.Commit.SHA), esc(e.Commit.Subject), esc(t.DiffFingerprint.PatchID),
		esc(t.Provider.Provider), esc(t.Provider.Model))

	if flags := t.Flags(); len(flags) > 0 {
		c.write(`<div class="flags">Hallucination flags:`)
		for _, f := range flags {
			c.printf(` <span>%s</span>`, esc(f))
		}
		c.write(`</div>`)
	}

	c.printf(`<form class="answers" method="post" action="%s"><button type="submit">`, IntentAnswers)
	if showAnswers {
		c.write(`Hide answers`)
	} else {
		c.write(`Show answers`)
	}
	c.write(`</button></form>`)

	c.write(`<table class="questions"><thead><tr><th>Category</th><th>Question</th><th class="num">Score</th><th class="num">Compl.</th><th class="num">Spec.</th></tr></thead><tbody>`)
	scores := perQuestionByID(t.Score.PerQuestion)
	for _, q := range t.Exam.Questions {
		qs := scores[q.ID]
		c.printf(`<tr><td>%s</td><td>%s`, esc(q.Category), esc(q.Prompt))
		if showAnswers {
			if ans := t.Answers.Get(q.ID); ans != "" {
				c.printf(`<div class="answer">%s</div>`, renderMarkdown(ans))
			}
		}
		if len(qs.Notes) > 0 {
			c.write(`<div class="notes">`)
			for i, n := range qs.Notes {
				if i > 0 {
					c.write(` &middot; `)
				}
				c.write(esc(n))
			}
			c.write(`</div>`)
		}
		c.printf(`</td><td class="num">%.2f</td><td class="num">%.2f</td><td class="num">%.2f</td></tr>`,
			qs.Score, qs.Completeness, qs.Specificity)
	}
	c.write(`</tbody></table>`)
}

func perQuestionByID(scores []models.QuestionScore) map[string]models.QuestionScore {
	m := make(map[string]models.QuestionScore, len(scores))
	for _, s := range scores {
		m[s.ID] = s
	}
	return m
}

func decisionBadge(d models.Decision) string {
	if d == models.DecisionPass {
		return `<span class="badge pass">pass</span>`
	}
	return `<span class="badge fail">fail</span>`
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
