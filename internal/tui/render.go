package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/printzz/printzz/models"
)

// RenderDocuments draws the pending documents as a table.
func RenderDocuments(docs []models.Document) string {
	if len(docs) == 0 {
		return helpStyle.Render("no pending documents") + "\n"
	}

	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, []string{
			d.DocID,
			d.PrinterID,
			d.Name,
			strconv.Itoa(d.Settings.Copies),
			d.Settings.DoubleSided.String(),
			colorLabel(d.Settings.Color),
			fmt.Sprintf("%.0f%%", d.Progress*100),
			createdLabel(d.CreatedAt),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("DOC ID", "PRINTER", "NAME", "COPIES", "SIDES", "COLOR", "PROGRESS", "CREATED").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.Render() + "\n"
}

// RenderUser draws the identity box shown by login, register and me.
func RenderUser(user models.User) string {
	return boxStyle.Render(fmt.Sprintf("%s\nuser_id: %s", titleStyle.Render(user.Username), user.UserID)) + "\n"
}

// RenderVersion draws the server build info.
func RenderVersion(v models.VersionResponse) string {
	return fmt.Sprintf("%s %s\n%s %s\n%s %s\n",
		titleStyle.Render("Version:"), v.Version,
		titleStyle.Render("Date:   "), v.BuildDate,
		titleStyle.Render("Commit: "), v.BuildCommit)
}

// RenderError formats a command failure for stderr.
func RenderError(err error) string {
	return errorStyle.Render("error: "+err.Error()) + "\n"
}

// RenderOK formats a short success line.
func RenderOK(msg string) string {
	return okStyle.Render(msg) + "\n"
}

func colorLabel(color bool) string {
	if color {
		return "color"
	}
	return "grey"
}

func createdLabel(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
