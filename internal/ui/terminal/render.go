package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"trivia-quiz/internal/domain"
)

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	question lipgloss.Style
	cursor   lipgloss.Style
	correct  lipgloss.Style
	wrong    lipgloss.Style
	dimmed   lipgloss.Style
	errorMsg lipgloss.Style
	help     lipgloss.Style
	score    lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			title: plain, header: plain, question: plain, cursor: plain, correct: plain,
			wrong: plain, dimmed: plain, errorMsg: plain, help: plain, score: plain,
		}
	}
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		question: lipgloss.NewStyle().Bold(true).MarginTop(1).MarginBottom(1),
		cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		correct:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		wrong:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Strikethrough(true),
		dimmed:   lipgloss.NewStyle().Faint(true),
		errorMsg: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		score:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
	}
}

// renderLoading shows the spinner, or the error screen with a retry hint.
func renderLoading(snap domain.Snapshot, spin string, st styles) string {
	if snap.Error == "" {
		return spin + " Loading questions..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		st.errorMsg.Render("Error loading questions"),
		"Could not connect to the question API.",
		st.header.Render(snap.Error),
		st.help.Render("[r] try again  [q] quit"),
	)
}

// renderQuiz shows the current question with answer feedback once answered.
func renderQuiz(snap domain.Snapshot, cursor int, bar progress.Model, st styles) string {
	header := st.header.Render(fmt.Sprintf("Question %d of %d    Score: %d", snap.Index+1, snap.Total, snap.Score))
	lines := make([]string, 0, len(snap.Answers))
	for i, answer := range snap.Answers {
		lines = append(lines, renderAnswer(snap, i, answer, cursor, st))
	}
	help := "[1-9] or ↑/↓ + enter to answer  [q] quit"
	if snap.Answered {
		help = feedbackLine(snap)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		st.title.Render("Trivia Quiz"),
		header,
		bar.ViewAs(snap.ProgressPercent/100),
		st.question.Render(snap.Question),
		strings.Join(lines, "\n"),
		st.help.Render(help),
	)
}

func renderAnswer(snap domain.Snapshot, i int, answer string, cursor int, st styles) string {
	label := fmt.Sprintf("%d. %s", i+1, answer)
	if !snap.Answered || snap.Verdict == nil {
		if i == cursor {
			return st.cursor.Render("> " + label)
		}
		return "  " + label
	}
	switch {
	case answer == snap.Verdict.CorrectAnswer:
		return st.correct.Render("✓ " + label)
	case answer == snap.Verdict.Selected:
		return st.wrong.Render("✗ " + label)
	default:
		return st.dimmed.Render("  " + label)
	}
}

func feedbackLine(snap domain.Snapshot) string {
	if snap.Verdict == nil {
		return ""
	}
	if snap.Verdict.Correct {
		return "Correct!"
	}
	return "Wrong. Correct answer was " + snap.Verdict.CorrectAnswer
}

// renderResult shows the final score.
func renderResult(snap domain.Snapshot, st styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		st.title.Render("Quiz complete!"),
		st.score.Render(fmt.Sprintf("%d/%d", snap.Score, snap.Total)),
		snap.ResultMessage,
		st.help.Render("[r] play again  [q] quit"),
	)
}
