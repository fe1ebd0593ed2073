package tui

import (
	"context"
	"strings"

	"contractai/service"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// searchScreen 上下键选择合同，输入问题后回车
type searchScreen struct {
	question textinput.Model
}

func newSearchScreen() *searchScreen {
	ti := textinput.New()
	ti.Placeholder = "What is the termination notice period?"
	ti.Prompt = "Question: "
	ti.CharLimit = 1000
	return &searchScreen{question: ti}
}

func (s *searchScreen) mount() tea.Cmd {
	s.question.SetValue("")
	return s.question.Focus()
}

func (s *searchScreen) Update(ctx context.Context, sess *service.Session, msg tea.KeyMsg, snap service.Snapshot) (tea.Cmd, error) {
	//nolint:exhaustive // 只处理导航和提交
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown:
		id := neighbour(snap, msg.Type == tea.KeyDown)
		if id == "" {
			return nil, nil
		}
		return nil, sess.SelectContract(ctx, id)
	case tea.KeyEnter:
		return nil, sess.SubmitQuery(ctx, s.question.Value())
	}

	var cmd tea.Cmd
	s.question, cmd = s.question.Update(msg)
	return cmd, nil
}

// neighbour 当前选中合同的上一个/下一个
func neighbour(snap service.Snapshot, next bool) string {
	if len(snap.Contracts) == 0 {
		return ""
	}
	idx := 0
	for i, c := range snap.Contracts {
		if c.ID == snap.Search.SelectedID {
			idx = i
			break
		}
	}
	if next && idx < len(snap.Contracts)-1 {
		idx++
	} else if !next && idx > 0 {
		idx--
	}
	return snap.Contracts[idx].ID
}

func (s *searchScreen) View(a *App, snap service.Snapshot) string {
	var b strings.Builder
	b.WriteString(a.styles.Label.Render("Select a contract"))
	if len(snap.Contracts) == 0 {
		b.WriteString("\n  " + a.styles.Muted.Render("No contracts uploaded yet."))
	}
	for _, c := range snap.Contracts {
		if c.ID == snap.Search.SelectedID {
			b.WriteString("\n" + a.styles.Selected.Render("> "+c.Name))
		} else {
			b.WriteString("\n  " + c.Name)
		}
	}
	b.WriteString("\n\n")
	b.WriteString(s.question.View())
	b.WriteString("\n\n")
	b.WriteString(a.renderState(snap.Search.State, a.renderMarkdown))
	return b.String()
}
