package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"contractai/service"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// uploadScreen 输入本地文件路径上传
type uploadScreen struct {
	path textinput.Model
}

func newUploadScreen() *uploadScreen {
	ti := textinput.New()
	ti.Placeholder = "/path/to/contract.pdf"
	ti.Prompt = "File: "
	ti.CharLimit = 512
	return &uploadScreen{path: ti}
}

func (u *uploadScreen) mount() tea.Cmd {
	u.path.SetValue("")
	return u.path.Focus()
}

func (u *uploadScreen) Update(ctx context.Context, sess *service.Session, msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEnter {
		in := fileInput(strings.TrimSpace(u.path.Value()))
		u.path.SetValue("")
		return func() tea.Msg {
			c, err := sess.AddContract(ctx, in)
			return uploadDone{contract: c, err: err}
		}
	}

	var cmd tea.Cmd
	u.path, cmd = u.path.Update(msg)
	return cmd
}

// fileInput 路径不存在时返回空输入，由会话给出校验提示
func fileInput(path string) service.FileInput {
	if path == "" {
		return service.FileInput{}
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return service.FileInput{}
	}
	return service.FileInput{
		Name: filepath.Base(path),
		Path: path,
		Size: info.Size(),
	}
}

func (u *uploadScreen) View(a *App, snap service.Snapshot) string {
	var b strings.Builder
	b.WriteString(a.styles.Muted.Render("Enter the path of a contract file and press Enter."))
	b.WriteString("\n\n")
	b.WriteString(u.path.View())
	b.WriteString("\n\n")
	b.WriteString(a.renderState(snap.Upload, func(name string) string {
		return a.styles.Success.Render(fmt.Sprintf("Uploaded %s", name))
	}))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Label.Render(fmt.Sprintf("Contracts (%d)", len(snap.Contracts))))
	for _, c := range snap.Contracts {
		b.WriteString("\n  " + c.Name + a.styles.Muted.Render("  "+c.UploadedAt.Format("2006-01-02 15:04")))
	}
	return b.String()
}
