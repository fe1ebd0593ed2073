package tui

import (
	"context"
	"errors"
	"strings"

	"contractai/service"
	"contractai/types"

	tea "github.com/charmbracelet/bubbletea"
)

// App 终端界面，所有状态都来自 service.Session 的快照
type App struct {
	ctx    context.Context
	sess   *service.Session
	styles *Styles
	md     *markdown

	snap   service.Snapshot
	notice string // 不属于任何页面状态的临时提示

	upload   *uploadScreen
	search   *searchScreen
	generate *generateScreen

	width  int
	height int
}

var _ tea.Model = (*App)(nil)

func NewApp(ctx context.Context, sess *service.Session) *App {
	a := &App{
		ctx:      ctx,
		sess:     sess,
		styles:   DefaultStyles(),
		md:       newMarkdown(),
		upload:   newUploadScreen(),
		search:   newSearchScreen(),
		generate: newGenerateScreen(),
		width:    80,
		height:   24,
	}
	a.snap = sess.Snapshot()
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.mount(a.snap.View), waitForChange(a.sess))
}

func (a *App) mount(view types.View) tea.Cmd {
	switch view {
	case types.ViewUpload:
		return a.upload.mount()
	case types.ViewGenerate:
		return a.generate.mount(a.snap.Generate.Details)
	default:
		return a.search.mount()
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case sessionChanged:
		a.snap = a.sess.Snapshot()
		return a, waitForChange(a.sess)

	case uploadDone:
		a.notice = noticeFor(msg.err)
		a.snap = a.sess.Snapshot()
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	//nolint:exhaustive // 全局快捷键
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyF1:
		return a.navigate(types.ViewUpload)
	case tea.KeyF2:
		return a.navigate(types.ViewSearch)
	case tea.KeyF3:
		return a.navigate(types.ViewGenerate)
	}

	a.notice = ""
	var cmd tea.Cmd
	var err error
	switch a.snap.View {
	case types.ViewUpload:
		cmd = a.upload.Update(a.ctx, a.sess, msg)
	case types.ViewSearch:
		cmd, err = a.search.Update(a.ctx, a.sess, msg, a.snap)
	case types.ViewGenerate:
		cmd, err = a.generate.Update(a.ctx, a.sess, msg)
	}
	a.notice = noticeFor(err)
	a.snap = a.sess.Snapshot()
	return cmd
}

func (a *App) navigate(view types.View) tea.Cmd {
	if err := a.sess.Navigate(a.ctx, view); err != nil {
		a.notice = err.Error()
		return nil
	}
	a.notice = ""
	a.snap = a.sess.Snapshot()
	return a.mount(view)
}

// noticeFor 校验错误已经写进页面状态，这里只提示其他错误
func noticeFor(err error) string {
	var verr *service.ValidationError
	switch {
	case err == nil, errors.As(err, &verr):
		return ""
	case errors.Is(err, service.ErrRequestInFlight):
		return "Please wait for the current request to finish."
	default:
		return err.Error()
	}
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("ContractAI"))
	b.WriteString("  ")
	for i, v := range types.Views {
		label := []string{"F1", "F2", "F3"}[i] + " " + v.Title()
		if v == a.snap.View {
			b.WriteString(a.styles.TabOn.Render(label))
		} else {
			b.WriteString(a.styles.Tab.Render(label))
		}
	}
	b.WriteString("\n\n")

	switch a.snap.View {
	case types.ViewUpload:
		b.WriteString(a.upload.View(a, a.snap))
	case types.ViewSearch:
		b.WriteString(a.search.View(a, a.snap))
	case types.ViewGenerate:
		b.WriteString(a.generate.View(a, a.snap))
	}

	if a.notice != "" {
		b.WriteString("\n\n" + a.styles.Error.Render(a.notice))
	}
	b.WriteString("\n\n" + a.styles.Muted.Render(helpFor(a.snap.View)))
	return b.String()
}

func helpFor(view types.View) string {
	switch view {
	case types.ViewSearch:
		return "↑/↓ select contract • enter ask • ctrl+c quit"
	case types.ViewGenerate:
		return "←/→ contract type • tab next field • ctrl+s generate • ctrl+c quit"
	default:
		return "enter upload • ctrl+c quit"
	}
}

// renderState 按请求状态渲染结果区
func (a *App) renderState(state types.RequestState, ok func(string) string) string {
	switch state.Status {
	case types.StatusLoading:
		return a.styles.Loading.Render("Working on it...")
	case types.StatusFailed:
		return a.styles.Error.Render(state.Error)
	case types.StatusSucceeded:
		return ok(state.Result)
	default:
		return ""
	}
}

func (a *App) renderMarkdown(text string) string {
	return a.styles.Box.Render(a.md.Render(text, a.width-4))
}
