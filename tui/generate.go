package tui

import (
	"context"
	"strings"

	"contractai/service"
	"contractai/types"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldPartyA = iota
	fieldPartyB
	fieldEffectiveDate
	fieldTerm
	fieldPaymentTerms
	fieldScope
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Party A", "Party B", "Effective Date", "Term", "Payment Terms (optional)", "Scope of Work",
}

// generateScreen 合同生成表单；类型用左右键切换，tab 切换输入框，ctrl+s 提交
type generateScreen struct {
	typeIdx int
	inputs  [fieldCount]textinput.Model
	focus   int
}

func newGenerateScreen() *generateScreen {
	g := &generateScreen{}
	for i := range g.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 500
		g.inputs[i] = ti
	}
	return g
}

// mount 用会话里的默认值填表
func (g *generateScreen) mount(details types.ContractDetails) tea.Cmd {
	g.typeIdx = 0
	for i, t := range types.ContractTypes {
		if t == details.Type {
			g.typeIdx = i
		}
	}
	values := [fieldCount]string{
		details.PartyA, details.PartyB, details.EffectiveDate, details.Term, details.PaymentTerms, details.Scope,
	}
	for i := range g.inputs {
		g.inputs[i].SetValue(values[i])
		g.inputs[i].Blur()
	}
	g.focus = fieldPartyA
	return g.inputs[g.focus].Focus()
}

func (g *generateScreen) details() types.ContractDetails {
	return types.ContractDetails{
		Type:          types.ContractTypes[g.typeIdx],
		PartyA:        g.inputs[fieldPartyA].Value(),
		PartyB:        g.inputs[fieldPartyB].Value(),
		EffectiveDate: g.inputs[fieldEffectiveDate].Value(),
		Term:          g.inputs[fieldTerm].Value(),
		PaymentTerms:  g.inputs[fieldPaymentTerms].Value(),
		Scope:         g.inputs[fieldScope].Value(),
	}
}

func (g *generateScreen) Update(ctx context.Context, sess *service.Session, msg tea.KeyMsg) (tea.Cmd, error) {
	//nolint:exhaustive // 只处理表单相关按键
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		return g.move(1), nil
	case tea.KeyShiftTab, tea.KeyUp:
		return g.move(-1), nil
	case tea.KeyLeft, tea.KeyRight:
		if msg.Alt {
			break
		}
		n := len(types.ContractTypes)
		if msg.Type == tea.KeyRight {
			g.typeIdx = (g.typeIdx + 1) % n
		} else {
			g.typeIdx = (g.typeIdx + n - 1) % n
		}
		return nil, nil
	case tea.KeyCtrlS:
		return nil, sess.SubmitDraft(ctx, g.details())
	case tea.KeyEnter:
		if g.focus == fieldCount-1 {
			return nil, sess.SubmitDraft(ctx, g.details())
		}
		return g.move(1), nil
	}

	var cmd tea.Cmd
	g.inputs[g.focus], cmd = g.inputs[g.focus].Update(msg)
	return cmd, nil
}

func (g *generateScreen) move(delta int) tea.Cmd {
	g.inputs[g.focus].Blur()
	g.focus = (g.focus + delta + fieldCount) % fieldCount
	return g.inputs[g.focus].Focus()
}

func (g *generateScreen) View(a *App, snap service.Snapshot) string {
	var b strings.Builder
	b.WriteString(a.styles.Label.Render("Contract Type: "))
	b.WriteString(a.styles.Selected.Render("< " + string(types.ContractTypes[g.typeIdx]) + " >"))
	for i := range g.inputs {
		label := fieldLabels[i] + ": "
		if i == g.focus {
			b.WriteString("\n" + a.styles.Selected.Render(label))
		} else {
			b.WriteString("\n" + a.styles.Label.Render(label))
		}
		b.WriteString(g.inputs[i].View())
	}
	b.WriteString("\n\n")
	b.WriteString(a.renderState(snap.Generate.State, a.renderMarkdown))
	return b.String()
}
