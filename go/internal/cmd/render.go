package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/mcdev12/clubmanager/go/internal/models"
	"github.com/mcdev12/clubmanager/go/internal/transfer"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8F98"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#dce0e5"))
)

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

func printTeam(w io.Writer, t *models.Team) {
	fmt.Fprintln(w, titleStyle.Render(t.Name))
	fmt.Fprintf(w, "Budget: %s\n", models.FormatMoney(t.Budget))
	printPlayers(w, t.Players)
}

func printPlayers(w io.Writer, players []models.Player) {
	if len(players) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No players"))
		return
	}

	rows := make([][]string, len(players))
	for i, p := range players {
		listed := "no"
		if p.IsOnTransferList {
			listed = "yes"
		}
		rows[i] = []string{p.ID, p.Name, string(p.Position), models.FormatMoney(p.Price), listed, models.FormatMoney(p.AskingPrice)}
	}
	fmt.Fprintln(w, renderTable([]string{"ID", "Name", "Position", "Value", "Listed", "Asking"}, rows))
}

// teamLabel falls back to the id when the API sent the team unexpanded.
func teamLabel(t models.TeamRef) string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}

func printListings(w io.Writer, listings []models.Listing, now time.Time) {
	if len(listings) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No players match the filter"))
		return
	}

	rows := make([][]string, len(listings))
	for i, l := range listings {
		rows[i] = []string{
			l.Player.ID,
			l.Player.Name,
			string(l.Player.Position),
			teamLabel(l.FromTeam),
			models.FormatMoney(l.Price),
			models.FormatMoney(transfer.EffectivePrice(l.Price)),
			humanize.RelTime(l.CreatedAt, now, "ago", "from now"),
		}
	}
	fmt.Fprintln(w, renderTable([]string{"ID", "Name", "Position", "Team", "Asking", "Buy", "Listed"}, rows))
}
