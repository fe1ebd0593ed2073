package generation

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"contractai/types"
	"contractai/vars"
)

var (
	queryTmpl = template.Must(template.New("query").Parse(vars.QUERY_PROMPT))
	draftTmpl = template.Must(template.New("draft").Parse(vars.DRAFT_PROMPT))
)

// BuildQueryPrompt 合同原文和问题原样嵌入，不做任何转义
func BuildQueryPrompt(contractText, question string) (string, error) {
	var buf bytes.Buffer
	err := queryTmpl.Execute(&buf, map[string]string{
		"Contract": contractText,
		"Question": question,
	})
	if err != nil {
		return "", fmt.Errorf("render query prompt: %w", err)
	}
	return buf.String(), nil
}

// BuildDraftPrompt 付款条款为空时写 "Not specified"
func BuildDraftPrompt(details types.ContractDetails) (string, error) {
	var buf bytes.Buffer
	err := draftTmpl.Execute(&buf, map[string]string{
		"Type":          string(details.Type),
		"PartyA":        details.PartyA,
		"PartyB":        details.PartyB,
		"EffectiveDate": details.EffectiveDate,
		"Term":          details.Term,
		"PaymentTerms":  details.PaymentTerms,
		"Scope":         details.Scope,
		"Clauses":       strings.Join(vars.BOILERPLATE_CLAUSES, ", "),
	})
	if err != nil {
		return "", fmt.Errorf("render draft prompt: %w", err)
	}
	return buf.String(), nil
}
