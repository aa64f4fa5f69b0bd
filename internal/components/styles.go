package components

import "strings"

// ScopeClass returns the CSS class that isolates a unit's styles and marks
// its root element.
func ScopeClass(name string) string { return "x-" + name }

// Scoped rewrites a style sheet so every rule applies only inside the unit's
// scope class. A selector of ":scope" targets the unit's root element
// itself. Rules are rewritten textually; at-rules are not supported and pass
// through unchanged.
func Scoped(name, css string) string {
	scope := "." + ScopeClass(name)

	var out strings.Builder
	for _, rule := range strings.Split(css, "}") {
		if strings.TrimSpace(rule) == "" {
			continue
		}
		sel, body, ok := strings.Cut(rule, "{")
		if !ok {
			out.WriteString(rule)
			continue
		}

		parts := strings.Split(sel, ",")
		for i, p := range parts {
			p = strings.TrimSpace(p)
			switch {
			case p == ":scope":
				parts[i] = scope
			case strings.HasPrefix(p, ":scope"):
				parts[i] = scope + strings.TrimPrefix(p, ":scope")
			case strings.HasPrefix(p, "@"):
				parts[i] = p // at-rule prelude, leave alone
			default:
				parts[i] = scope + " " + p
			}
		}
		out.WriteString(strings.Join(parts, ", "))
		out.WriteString(" { ")
		out.WriteString(strings.TrimSpace(body))
		out.WriteString(" }\n")
	}
	return out.String()
}
