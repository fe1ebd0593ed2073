package types

import "strings"

// View 当前激活的页面，同一时刻只有一个
type View string

const (
	ViewUpload   View = "UPLOAD"
	ViewSearch   View = "SEARCH"
	ViewGenerate View = "GENERATE"
)

// Views 导航顺序
var Views = []View{ViewUpload, ViewSearch, ViewGenerate}

func ParseView(s string) (View, bool) {
	for _, v := range Views {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v, true
		}
	}
	return "", false
}

// Title 页面标题
func (v View) Title() string {
	switch v {
	case ViewUpload:
		return "Upload Contracts"
	case ViewSearch:
		return "Search & Analyze"
	case ViewGenerate:
		return "Generate Contract"
	default:
		return string(v)
	}
}

// RequestStatus 页面内请求状态
type RequestStatus string

const (
	StatusIdle      RequestStatus = "idle"
	StatusLoading   RequestStatus = "loading"
	StatusSucceeded RequestStatus = "succeeded"
	StatusFailed    RequestStatus = "failed"
)

// RequestState 每个页面独立持有一份，生命周期跟随页面挂载
type RequestState struct {
	Status RequestStatus `json:"status"`
	Result string        `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

func (s RequestState) Loading() bool {
	return s.Status == StatusLoading
}
