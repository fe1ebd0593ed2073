package service

import (
	"context"
	"sync"
	"time"

	"contractai/pkg/logger"

	"github.com/google/uuid"
)

// Manager 管理所有会话；会话结束即销毁其合同列表
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	deps     Deps
}

func NewManager(deps Deps) *Manager {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Manager{
		sessions: make(map[string]*Session),
		deps:     deps,
	}
}

// Create 新建会话 (登录)
func (m *Manager) Create(ctx context.Context) *Session {
	s := NewSession(uuid.New().String(), m.deps)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	logger.Info(logger.WithSession(ctx, s.ID()), "session created", "seeded", m.deps.SeedSamples)
	return s
}

// Get 查找会话并刷新访问时间
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		s.Touch()
	}
	return s, ok
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep 回收空闲超过 ttl 的会话，有请求未返回的会话跳过
func (m *Manager) Sweep(now time.Time, ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.Busy() || now.Sub(s.LastSeen()) < ttl {
			continue
		}
		delete(m.sessions, id)
		removed++
	}
	return removed
}

// Wait 关闭服务前等待所有会话的请求返回
func (m *Manager) Wait() {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	for _, s := range sessions {
		s.Wait()
	}
}
