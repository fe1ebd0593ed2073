package tui

import (
	"contractai/service"
	"contractai/types"

	tea "github.com/charmbracelet/bubbletea"
)

// sessionChanged 会话状态有变化，需要重新取快照
type sessionChanged struct{}

// uploadDone 上传在后台完成
type uploadDone struct {
	contract *types.Contract
	err      error
}

// waitForChange 阻塞到会话发出变化信号
func waitForChange(sess *service.Session) tea.Cmd {
	return func() tea.Msg {
		<-sess.Changes()
		return sessionChanged{}
	}
}
