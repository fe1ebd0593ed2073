package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"contractai/api/router"
	"contractai/service"
	"contractai/types"
	"contractai/vars"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type echoGenerator struct{}

func (echoGenerator) AnswerQuestion(_ context.Context, contractText, question string) (string, error) {
	return "answer to: " + question, nil
}

func (echoGenerator) DraftContract(_ context.Context, details types.ContractDetails) (string, error) {
	return "# " + string(details.Type) + " between " + details.PartyA + " and " + details.PartyB, nil
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type testServer struct {
	t       *testing.T
	engine  *gin.Engine
	session string
}

// hangingSearch 提问阻塞到 release 关闭，起草走 echoGenerator
type hangingSearch struct {
	echoGenerator
	release chan struct{}
}

func (g hangingSearch) AnswerQuestion(ctx context.Context, contractText, question string) (string, error) {
	<-g.release
	return g.echoGenerator.AnswerQuestion(ctx, contractText, question)
}

func newTestServer(t *testing.T) *testServer {
	return newTestServerWith(t, echoGenerator{})
}

func newTestServerWith(t *testing.T, gen service.Generator) *testServer {
	manager := service.NewManager(service.Deps{Generator: gen, SeedSamples: true, MaxUploadBytes: 1 << 20})
	ts := &testServer{t: t, engine: router.New(manager)}

	w := ts.do(http.MethodPost, "/api/v1/session/login", `{"username":"demo","password":"anything"}`)
	require.Equal(t, http.StatusOK, w.Code)
	ts.session = w.Header().Get(vars.SESSION_HEADER)
	require.NotEmpty(t, ts.session)
	return ts
}

func (ts *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if ts.session != "" {
		req.Header.Set(vars.SESSION_HEADER, ts.session)
	}
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func (ts *testServer) upload(names ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range names {
		fw, err := mw.CreateFormFile("file", name)
		require.NoError(ts.t, err)
		_, _ = fw.Write([]byte("contract body"))
	}
	require.NoError(ts.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contract/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(vars.SESSION_HEADER, ts.session)
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestUnauthorized(t *testing.T) {
	ts := newTestServer(t)
	ts.session = ""

	w := ts.do(http.MethodGet, "/api/v1/session", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginReturnsSeededState(t *testing.T) {
	ts := newTestServer(t)

	var snap service.Snapshot
	env := decode(t, ts.do(http.MethodGet, "/api/v1/session", ""), &snap)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, types.ViewSearch, snap.View)
	assert.Len(t, snap.Contracts, 2)
	assert.Equal(t, types.StatusIdle, snap.Upload.Status)
	assert.Equal(t, types.StatusIdle, snap.Search.State.Status)
	assert.Equal(t, types.StatusIdle, snap.Generate.State.Status)
}

func TestUploadAndList(t *testing.T) {
	ts := newTestServer(t)

	// 上传页未激活
	assert.Equal(t, http.StatusConflict, ts.upload("a.pdf").Code)

	require.Equal(t, http.StatusOK, ts.do(http.MethodPost, "/api/v1/session/view", `{"view":"upload"}`).Code)

	w := ts.upload("lease.pdf", "sow.docx")
	require.Equal(t, http.StatusOK, w.Code)
	var uploaded struct {
		Contracts []types.Contract `json:"contracts"`
		Total     int              `json:"total_count"`
	}
	env := decode(t, w, &uploaded)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, 2, uploaded.Total)

	var list struct {
		Contracts []types.Contract `json:"contracts"`
	}
	decode(t, ts.do(http.MethodGet, "/api/v1/contract/list", ""), &list)
	require.Len(t, list.Contracts, 4)
	assert.Equal(t, "lease.pdf", list.Contracts[2].Name)
	assert.Equal(t, "sow.docx", list.Contracts[3].Name)
	assert.Contains(t, list.Contracts[2].Content, "Content of lease.pdf.")

	decode(t, ts.do(http.MethodGet, "/api/v1/contract/list?keyword=LEASE", ""), &list)
	assert.Len(t, list.Contracts, 1)
}

func TestUploadWithoutFile(t *testing.T) {
	ts := newTestServer(t)
	require.Equal(t, http.StatusOK, ts.do(http.MethodPost, "/api/v1/session/view", `{"view":"UPLOAD"}`).Code)

	w := ts.upload()
	env := decode(t, w, nil)
	assert.Equal(t, -1, env.Code)
	assert.Equal(t, vars.MSG_NO_FILE, env.Msg)
}

func TestSearch(t *testing.T) {
	ts := newTestServer(t)

	var state service.SearchSnapshot
	env := decode(t, ts.do(http.MethodPost, "/api/v1/retrieval/search?wait=true", `{"question":"What is the term?"}`), &state)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, types.StatusSucceeded, state.State.Status)
	assert.Equal(t, "answer to: What is the term?", state.State.Result)

	env = decode(t, ts.do(http.MethodPost, "/api/v1/retrieval/search", `{"question":"  "}`), nil)
	assert.Equal(t, -1, env.Code)
	assert.Equal(t, vars.MSG_SELECT_AND_ASK, env.Msg)

	env = decode(t, ts.do(http.MethodPost, "/api/v1/retrieval/search", `{"contract_id":"missing","question":"q"}`), nil)
	assert.Equal(t, vars.MSG_CONTRACT_GONE, env.Msg)
}

func TestSearchAccepted(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/retrieval/search", `{"question":"Who are the parties?"}`)
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestGenerate(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/generate/draft", `{"party_a":"Acme"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	require.Equal(t, http.StatusOK, ts.do(http.MethodPost, "/api/v1/session/view", `{"view":"generate"}`).Code)

	env := decode(t, ts.do(http.MethodPost, "/api/v1/generate/draft", `{"party_a":"Acme"}`), nil)
	assert.Equal(t, -1, env.Code)
	assert.Equal(t, vars.MSG_DRAFT_REQUIRED, env.Msg)

	var state service.GenerateSnapshot
	body := `{"type":"NDA","party_a":"Acme","party_b":"Beta","scope":"testing"}`
	env = decode(t, ts.do(http.MethodPost, "/api/v1/generate/draft?wait=true", body), &state)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, types.StatusSucceeded, state.State.Status)
	assert.Equal(t, "# Non-Disclosure Agreement (NDA) between Acme and Beta", state.State.Result)
	assert.Equal(t, "5 years", state.Details.Term)
	assert.Empty(t, state.Details.PaymentTerms)
}

func TestSwitchViewUnknown(t *testing.T) {
	ts := newTestServer(t)

	env := decode(t, ts.do(http.MethodPost, "/api/v1/session/view", `{"view":"settings"}`), nil)
	assert.Equal(t, -1, env.Code)
}

func TestDraftWaitIgnoresOtherScreens(t *testing.T) {
	gen := hangingSearch{release: make(chan struct{})}
	ts := newTestServerWith(t, gen)
	defer close(gen.release)

	require.Equal(t, http.StatusAccepted, ts.do(http.MethodPost, "/api/v1/retrieval/search", `{"question":"What is the term?"}`).Code)
	require.Equal(t, http.StatusOK, ts.do(http.MethodPost, "/api/v1/session/view", `{"view":"generate"}`).Code)

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- ts.do(http.MethodPost, "/api/v1/generate/draft?wait=true", `{"type":"MSA","party_a":"Acme","party_b":"Beta","scope":"testing"}`)
	}()

	select {
	case w := <-done:
		var state service.GenerateSnapshot
		env := decode(t, w, &state)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, env.Code)
		assert.Equal(t, types.StatusSucceeded, state.State.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("draft ?wait=true blocked by the pending search")
	}
}

func TestMalformedBodyFailsScreen(t *testing.T) {
	ts := newTestServer(t)

	env := decode(t, ts.do(http.MethodPost, "/api/v1/retrieval/search", `{"question":`), nil)
	assert.Equal(t, -1, env.Code)
	assert.Equal(t, vars.MSG_SELECT_AND_ASK, env.Msg)

	var snap service.Snapshot
	decode(t, ts.do(http.MethodGet, "/api/v1/session", ""), &snap)
	assert.Equal(t, types.StatusFailed, snap.Search.State.Status)
	assert.Equal(t, vars.MSG_SELECT_AND_ASK, snap.Search.State.Error)

	// 未激活的页面仍然是 409
	assert.Equal(t, http.StatusConflict, ts.do(http.MethodPost, "/api/v1/generate/draft", `not json`).Code)

	require.Equal(t, http.StatusOK, ts.do(http.MethodPost, "/api/v1/session/view", `{"view":"generate"}`).Code)
	env = decode(t, ts.do(http.MethodPost, "/api/v1/generate/draft", `not json`), nil)
	assert.Equal(t, vars.MSG_DRAFT_REQUIRED, env.Msg)

	decode(t, ts.do(http.MethodGet, "/api/v1/session", ""), &snap)
	assert.Equal(t, types.StatusFailed, snap.Generate.State.Status)
}
