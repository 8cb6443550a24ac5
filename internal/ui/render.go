package ui

import (
	"embed"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// State is everything the renderer needs; it is a value, so rendering it
// has no side effects.
type State struct {
	Phase    Phase
	Status   string
	Plan     *PlanView
	Alert    string
	Feedback Feedback
}

type pageData struct {
	State
	Busy         bool
	ShowFeedback bool
}

// Render writes the full page for st. The only possible errors come from w.
func Render(w io.Writer, st State) error {
	data := pageData{
		State:        st,
		Busy:         st.Phase == PhaseSubmitting,
		ShowFeedback: st.Phase == PhaseRendered && st.Plan != nil,
	}
	if !data.Busy {
		data.Status = ""
	}
	return pageTemplates.ExecuteTemplate(w, "page", data)
}

// RenderPlan renders only the plan section.
func RenderPlan(p PlanView) (template.HTML, error) {
	var b strings.Builder
	if err := pageTemplates.ExecuteTemplate(&b, "plan", p); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}
