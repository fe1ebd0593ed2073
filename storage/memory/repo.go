package memory

import (
	"errors"
	"strings"
	"sync"
	"time"

	"contractai/types"

	"github.com/google/uuid"
)

// ErrNotFound 合同不存在
var ErrNotFound = errors.New("contract not found")

// ContractRepo 会话内的合同集合：只追加，保持插入顺序
type ContractRepo struct {
	mu        sync.RWMutex
	contracts []*types.Contract
	index     map[string]int
	now       func() time.Time
}

func NewContractRepo() *ContractRepo {
	return &ContractRepo{
		index: make(map[string]int),
		now:   time.Now,
	}
}

// Append 追加一条记录；ID 和上传时间为空时自动生成，重复 ID 会换一个新的
func (r *ContractRepo) Append(contract *types.Contract) *types.Contract {
	c := *contract

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.index[c.ID]; c.ID == "" || dup {
		c.ID = uuid.New().String()
	}
	if c.UploadedAt.IsZero() {
		c.UploadedAt = r.now()
	}

	r.index[c.ID] = len(r.contracts)
	r.contracts = append(r.contracts, &c)

	out := c
	return &out
}

// List 按插入顺序返回副本
func (r *ContractRepo) List() []*types.Contract {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*types.Contract, 0, len(r.contracts))
	for _, c := range r.contracts {
		cp := *c
		out = append(out, &cp)
	}
	return out
}

func (r *ContractRepo) Get(id string) (*types.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r.contracts[i]
	return &cp, nil
}

// GetByFileName 同名文件返回最早上传的一份
func (r *ContractRepo) GetByFileName(name string) (*types.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.contracts {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// SearchByKeyword 按文件名模糊匹配，大小写不敏感
func (r *ContractRepo) SearchByKeyword(keyword string) []*types.Contract {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return r.List()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*types.Contract
	for _, c := range r.contracts {
		if strings.Contains(strings.ToLower(c.Name), keyword) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out
}

func (r *ContractRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.contracts)
}
