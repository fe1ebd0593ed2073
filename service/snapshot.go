package service

import "contractai/types"

// Snapshot 某一时刻的完整状态副本，前端只读
type Snapshot struct {
	SessionID string             `json:"session_id"`
	View      types.View         `json:"view"`
	Contracts []*types.Contract  `json:"contracts"`
	Upload    types.RequestState `json:"upload"`
	Search    SearchSnapshot     `json:"search"`
	Generate  GenerateSnapshot   `json:"generate"`
}

type SearchSnapshot struct {
	SelectedID string             `json:"selected_id"`
	Question   string             `json:"question"`
	State      types.RequestState `json:"state"`
}

type GenerateSnapshot struct {
	Details types.ContractDetails `json:"details"`
	State   types.RequestState    `json:"state"`
}

// Screen 当前激活页面的请求状态
func (s Snapshot) Screen() types.RequestState {
	switch s.View {
	case types.ViewUpload:
		return s.Upload
	case types.ViewGenerate:
		return s.Generate.State
	default:
		return s.Search.State
	}
}

// Selected 当前选中的合同，没有合同时返回 nil
func (s Snapshot) Selected() *types.Contract {
	for _, c := range s.Contracts {
		if c.ID == s.Search.SelectedID {
			return c
		}
	}
	return nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		SessionID: s.id,
		View:      s.view,
		Contracts: s.repo.List(),
		Upload:    s.upload.state,
		Search: SearchSnapshot{
			SelectedID: s.selectedIDLocked(),
			Question:   s.search.question,
			State:      s.search.state,
		},
		Generate: GenerateSnapshot{
			Details: s.generate.details,
			State:   s.generate.state,
		},
	}
}
