package types

import (
	"strings"
	"time"
)

// Contract 会话内的一份合同记录，追加后不再修改
type Contract struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ContractType 可生成的合同类型 (固定枚举)
type ContractType string

const (
	TypeNDA        ContractType = "Non-Disclosure Agreement (NDA)"
	TypeMSA        ContractType = "Master Services Agreement (MSA)"
	TypeSOW        ContractType = "Statement of Work (SOW)"
	TypeContractor ContractType = "Independent Contractor Agreement"
)

// ContractTypes 表单下拉框的顺序
var ContractTypes = []ContractType{TypeNDA, TypeMSA, TypeSOW, TypeContractor}

// 简称 -> 类型，方便 API 调用方直接传 "NDA"
var contractTypeCodes = map[string]ContractType{
	"nda":        TypeNDA,
	"msa":        TypeMSA,
	"sow":        TypeSOW,
	"contractor": TypeContractor,
}

// ParseContractType 同时接受完整名称和简称，大小写不敏感
func ParseContractType(s string) (ContractType, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, t := range ContractTypes {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	t, ok := contractTypeCodes[strings.ToLower(s)]
	return t, ok
}

// ContractDetails 合同生成请求
type ContractDetails struct {
	Type          ContractType `json:"type"`
	PartyA        string       `json:"party_a"`
	PartyB        string       `json:"party_b"`
	EffectiveDate string       `json:"effective_date"`
	Term          string       `json:"term"`
	PaymentTerms  string       `json:"payment_terms"` // 可选
	Scope         string       `json:"scope"`
}

// QueryRequest 合同问答请求，ContractID 为空时使用当前选中的合同
type QueryRequest struct {
	ContractID string `json:"contract_id"`
	Question   string `json:"question"`
}
