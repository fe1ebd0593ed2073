package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"contractai/logic/generation"
	"contractai/logic/ingestion/extract"
	"contractai/pkg/logger"
	"contractai/storage/memory"
	"contractai/types"
	"contractai/vars"
)

var (
	// ErrRequestInFlight 当前页面已有请求在处理
	ErrRequestInFlight = errors.New("a request is already in progress on this screen")
	// ErrScreenInactive 只有当前激活的页面才能提交操作
	ErrScreenInactive = errors.New("screen is not active")
)

const defaultTerm = "5 years"

// ValidationError 表单校验失败，Message 直接展示给用户
type ValidationError struct {
	Screen  types.View
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Generator 外部生成服务
type Generator interface {
	AnswerQuestion(ctx context.Context, contractText, question string) (string, error)
	DraftContract(ctx context.Context, details types.ContractDetails) (string, error)
}

// FileInput 一次上传的文件；HTTP 给 Open，TUI 给 Path
type FileInput struct {
	Name string
	Size int64
	Path string
	Open func() (io.ReadCloser, error)
}

// Deps 会话依赖，由 Manager 统一注入
type Deps struct {
	Generator      Generator
	Extractor      extract.Extractor // 为空时使用占位内容
	MaxUploadBytes int64             // <=0 不限制
	SeedSamples    bool
	Now            func() time.Time
}

type slot struct {
	epoch uint64
	state types.RequestState
	done  chan struct{} // 最近一次请求返回时关闭
}

func mountSlot(epoch uint64) slot {
	return slot{epoch: epoch, state: types.RequestState{Status: types.StatusIdle}}
}

type searchScreen struct {
	slot
	selectedID string
	question   string
}

type generateScreen struct {
	slot
	details types.ContractDetails
}

// Session 一个用户的全部界面状态，所有写操作都在 mu 下完成
type Session struct {
	id   string
	deps Deps
	repo *memory.ContractRepo

	mu       sync.Mutex
	view     types.View
	upload   slot
	search   searchScreen
	generate generateScreen
	inflight int
	lastSeen time.Time

	wg      sync.WaitGroup
	changes chan struct{}
}

func NewSession(id string, deps Deps) *Session {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Extractor == nil {
		deps.Extractor = extract.Placeholder{}
	}

	s := &Session{
		id:       id,
		deps:     deps,
		repo:     memory.NewContractRepo(),
		view:     types.ViewSearch,
		lastSeen: deps.Now(),
		changes:  make(chan struct{}, 1),
	}
	for _, v := range types.Views {
		s.resetScreen(v)
	}
	if deps.SeedSamples {
		s.seed()
	}
	return s
}

func (s *Session) seed() {
	now := s.deps.Now()
	s.repo.Append(&types.Contract{Name: vars.SAMPLE_MSA_NAME, Content: strings.TrimSpace(vars.SAMPLE_MSA_CONTENT), UploadedAt: now})
	s.repo.Append(&types.Contract{Name: vars.SAMPLE_NDA_NAME, Content: vars.SAMPLE_NDA_CONTENT, UploadedAt: now})
}

func (s *Session) ID() string {
	return s.id
}

// Changes 状态变化时收到一个信号，多次变化可能合并成一次
func (s *Session) Changes() <-chan struct{} {
	return s.changes
}

// Wait 等待所有进行中的生成请求返回，只在关闭或测试时使用
func (s *Session) Wait() {
	s.wg.Wait()
}

// Await 只等待 view 页面最近一次请求返回，不受其他页面影响
// 页面没有请求或已重新挂载时立即返回
func (s *Session) Await(ctx context.Context, view types.View) error {
	s.mu.Lock()
	done := s.slotOf(view).done
	s.mu.Unlock()
	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// Touch 记录最近一次访问，用于空闲回收
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = s.deps.Now()
	s.mu.Unlock()
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Busy 是否还有生成请求未返回
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

// Navigate 切换页面：离开的页面被卸载，进入的页面以全新状态挂载
func (s *Session) Navigate(ctx context.Context, view types.View) error {
	if _, ok := types.ParseView(string(view)); !ok {
		return fmt.Errorf("unknown view %q", view)
	}

	s.mu.Lock()
	if s.view == view {
		s.mu.Unlock()
		return nil
	}
	leaving := s.view
	s.resetScreen(leaving)
	s.resetScreen(view)
	s.view = view
	s.mu.Unlock()

	logger.Debug(ctx, "view changed", "from", leaving, "to", view)
	s.notify()
	return nil
}

// resetScreen 清空页面状态并递增挂载序号，旧请求的结果之后会被丢弃；调用方持有 mu
func (s *Session) resetScreen(view types.View) {
	switch view {
	case types.ViewUpload:
		s.upload = mountSlot(s.upload.epoch + 1)
	case types.ViewSearch:
		s.search = searchScreen{slot: mountSlot(s.search.epoch + 1)}
	case types.ViewGenerate:
		s.generate = generateScreen{
			slot:    mountSlot(s.generate.epoch + 1),
			details: s.defaultDetails(),
		}
	}
}

func (s *Session) defaultDetails() types.ContractDetails {
	return types.ContractDetails{
		Type:          types.TypeNDA,
		EffectiveDate: s.deps.Now().Format(time.DateOnly),
		Term:          defaultTerm,
	}
}

func (s *Session) slotOf(view types.View) *slot {
	switch view {
	case types.ViewUpload:
		return &s.upload
	case types.ViewSearch:
		return &s.search.slot
	default:
		return &s.generate.slot
	}
}

// begin 检查页面是否可以接受新操作；调用方持有 mu
func (s *Session) begin(view types.View) error {
	if s.view != view {
		return ErrScreenInactive
	}
	if s.slotOf(view).state.Loading() {
		return ErrRequestInFlight
	}
	return nil
}

// RejectInput 请求体无法解析时使用，与其他校验失败一样让页面进入 failed
func (s *Session) RejectInput(ctx context.Context, view types.View, msg string) error {
	s.mu.Lock()
	if err := s.begin(view); err != nil {
		s.mu.Unlock()
		return err
	}
	err := s.reject(view, msg)
	s.mu.Unlock()

	logger.Debug(logger.WithSession(ctx, s.id), "input rejected", "view", view, "reason", msg)
	s.notify()
	return err
}

// reject 校验失败：页面进入 failed，不调用外部服务；调用方持有 mu
func (s *Session) reject(view types.View, msg string) error {
	s.slotOf(view).state = types.RequestState{Status: types.StatusFailed, Error: msg}
	return &ValidationError{Screen: view, Message: msg}
}

// AddContract 上传一个文件并追加到合同列表
func (s *Session) AddContract(ctx context.Context, in FileInput) (*types.Contract, error) {
	ctx = logger.WithSession(ctx, s.id)

	s.mu.Lock()
	if err := s.begin(types.ViewUpload); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || (in.Open == nil && in.Path == "") {
		err := s.reject(types.ViewUpload, vars.MSG_NO_FILE)
		s.mu.Unlock()
		s.notify()
		return nil, err
	}
	if s.deps.MaxUploadBytes > 0 && in.Size > s.deps.MaxUploadBytes {
		err := s.reject(types.ViewUpload, vars.MSG_FILE_TOO_LARGE)
		s.mu.Unlock()
		s.notify()
		return nil, err
	}
	epoch := s.upload.epoch
	s.mu.Unlock()

	content, err := s.deps.Extractor.Extract(ctx, extract.Source{Name: name, Path: in.Path, Open: in.Open})
	if err != nil {
		logger.Warn(ctx, "extract contract content failed", "file", name, "error", err)
		s.mu.Lock()
		if s.upload.epoch == epoch {
			err = s.reject(types.ViewUpload, vars.MSG_EXTRACT_FAILED)
		} else {
			err = &ValidationError{Screen: types.ViewUpload, Message: vars.MSG_EXTRACT_FAILED}
		}
		s.mu.Unlock()
		s.notify()
		return nil, err
	}

	contract := s.repo.Append(&types.Contract{Name: name, Content: content, UploadedAt: s.deps.Now()})

	s.mu.Lock()
	if s.upload.epoch == epoch {
		s.upload.state = types.RequestState{Status: types.StatusSucceeded, Result: contract.Name}
	}
	s.mu.Unlock()

	logger.Info(ctx, "contract uploaded", "contract_id", contract.ID, "file", contract.Name, "chars", len(content))
	s.notify()
	return contract, nil
}

// SelectContract 搜索页选中一份合同
func (s *Session) SelectContract(ctx context.Context, id string) error {
	s.mu.Lock()
	if err := s.begin(types.ViewSearch); err != nil {
		s.mu.Unlock()
		return err
	}
	if _, err := s.repo.Get(id); err != nil {
		err := s.reject(types.ViewSearch, vars.MSG_CONTRACT_GONE)
		s.mu.Unlock()
		s.notify()
		return err
	}
	s.search.selectedID = id
	s.mu.Unlock()

	logger.Debug(logger.WithSession(ctx, s.id), "contract selected", "contract_id", id)
	s.notify()
	return nil
}

// SubmitQuery 针对选中的合同提问，结果异步写回搜索页
func (s *Session) SubmitQuery(ctx context.Context, question string) error {
	ctx = logger.WithSession(ctx, s.id)

	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	if err := s.begin(types.ViewSearch); err != nil {
		return err
	}

	s.search.question = question
	selected := s.selectedIDLocked()
	if selected == "" || strings.TrimSpace(question) == "" {
		return s.reject(types.ViewSearch, vars.MSG_SELECT_AND_ASK)
	}
	contract, err := s.repo.Get(selected)
	if err != nil {
		return s.reject(types.ViewSearch, vars.MSG_CONTRACT_GONE)
	}
	s.search.selectedID = contract.ID

	logger.Info(ctx, "query submitted", "contract_id", contract.ID, "question_chars", len(question))
	s.dispatch(ctx, types.ViewSearch, func(ctx context.Context) (string, error) {
		return s.deps.Generator.AnswerQuestion(ctx, contract.Content, question)
	})
	return nil
}

// SubmitDraft 生成合同；未填写的日期、期限、类型取表单默认值
func (s *Session) SubmitDraft(ctx context.Context, details types.ContractDetails) error {
	ctx = logger.WithSession(ctx, s.id)

	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	if err := s.begin(types.ViewGenerate); err != nil {
		return err
	}

	merged := s.mergeDetails(details)
	s.generate.details = merged

	if strings.TrimSpace(string(details.Type)) != "" {
		t, ok := types.ParseContractType(string(details.Type))
		if !ok {
			return s.reject(types.ViewGenerate, vars.MSG_UNKNOWN_TYPE)
		}
		merged.Type = t
		s.generate.details.Type = t
	}
	if merged.PartyA == "" || merged.PartyB == "" || merged.Scope == "" {
		return s.reject(types.ViewGenerate, vars.MSG_DRAFT_REQUIRED)
	}

	logger.Info(ctx, "draft submitted", "type", merged.Type)
	s.dispatch(ctx, types.ViewGenerate, func(ctx context.Context) (string, error) {
		return s.deps.Generator.DraftContract(ctx, merged)
	})
	return nil
}

func (s *Session) mergeDetails(in types.ContractDetails) types.ContractDetails {
	out := s.generate.details
	if t := strings.TrimSpace(string(in.Type)); t != "" {
		out.Type = types.ContractType(t)
	}
	if v := strings.TrimSpace(in.EffectiveDate); v != "" {
		out.EffectiveDate = v
	}
	if v := strings.TrimSpace(in.Term); v != "" {
		out.Term = v
	}
	out.PartyA = strings.TrimSpace(in.PartyA)
	out.PartyB = strings.TrimSpace(in.PartyB)
	out.PaymentTerms = strings.TrimSpace(in.PaymentTerms)
	out.Scope = strings.TrimSpace(in.Scope)
	return out
}

// dispatch 在 goroutine 中调用生成服务
// 导航不取消请求，只有超时；返回时页面已被卸载则丢弃结果。调用方持有 mu
func (s *Session) dispatch(ctx context.Context, view types.View, call func(context.Context) (string, error)) {
	sl := s.slotOf(view)
	sl.state = types.RequestState{Status: types.StatusLoading}
	sl.done = make(chan struct{})
	epoch, done := sl.epoch, sl.done

	s.inflight++
	s.wg.Add(1)
	dctx := context.WithoutCancel(ctx)

	go func() {
		defer s.wg.Done()
		defer close(done)

		text, err := s.invoke(dctx, call)

		s.mu.Lock()
		s.inflight--
		cur := s.slotOf(view)
		if cur.epoch != epoch {
			s.mu.Unlock()
			logger.Info(dctx, "screen unmounted, dropping result", "view", view)
			return
		}
		if err != nil {
			cur.state = types.RequestState{Status: types.StatusFailed, Error: failureMessage(err)}
		} else {
			cur.state = types.RequestState{Status: types.StatusSucceeded, Result: text}
		}
		s.mu.Unlock()
		s.notify()
	}()
}

func (s *Session) invoke(ctx context.Context, call func(context.Context) (string, error)) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "generator panicked", "panic", r)
			text, err = "", fmt.Errorf("generator panic: %v", r)
		}
	}()
	return call(ctx)
}

func failureMessage(err error) string {
	if errors.Is(err, generation.ErrGenerationFailed) {
		return err.Error()
	}
	return vars.MSG_AI_UNAVAILABLE
}

// selectedIDLocked 没有显式选择或选中的合同不存在时默认第一份；调用方持有 mu
func (s *Session) selectedIDLocked() string {
	if s.search.selectedID != "" {
		if _, err := s.repo.Get(s.search.selectedID); err == nil {
			return s.search.selectedID
		}
	}
	list := s.repo.List()
	if len(list) == 0 {
		return ""
	}
	return list[0].ID
}

// Contracts 按上传顺序返回合同列表，keyword 非空时按文件名过滤
func (s *Session) Contracts(keyword string) []*types.Contract {
	return s.repo.SearchByKeyword(keyword)
}

func (s *Session) Contract(id string) (*types.Contract, error) {
	return s.repo.Get(id)
}
