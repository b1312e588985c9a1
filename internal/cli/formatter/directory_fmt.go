package formatter

import (
	"strings"

	"github.com/alexanderramin/wbs/internal/domain"
)

// FormatProjectList renders projects inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "UUID"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		id := p.ShortID
		if strings.TrimSpace(id) == "" {
			id = "--"
		}
		rows = append(rows, []string{id, Bold(p.Name), TruncID(p.ID)})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatPersonList renders the employee directory.
func FormatPersonList(people []*domain.Person) string {
	headers := []string{"NAME", "EMAIL", "ID"}
	rows := make([][]string, 0, len(people))
	for _, p := range people {
		email := p.Email
		if email == "" {
			email = Dim("--")
		}
		rows = append(rows, []string{Bold(p.DisplayName), email, TruncID(p.ID)})
	}
	return RenderBox("People", RenderTable(headers, rows))
}
