package models

import (
	"encoding/json"
)

// AnalysisRequest is the JSON envelope accepted by POST /api/analyze.
type AnalysisRequest struct {
	Image  string `json:"image"`
	Query  string `json:"query"`
	APIKey string `json:"apiKey,omitempty"`
}

// HasContent reports whether both the image and the question are present.
func (r *AnalysisRequest) HasContent() bool {
	return r.Image != "" && r.Query != ""
}

// AnalysisResult wraps an upstream answer. Raw is relayed to API callers
// untouched; PrimaryText is what the form displays.
type AnalysisResult struct {
	PrimaryText string
	Raw         json.RawMessage
}

// PrimaryTextKeys lists the response fields the upstream service has used
// for its answer, in lookup order. Compatibility shim, not a contract.
var PrimaryTextKeys = []string{"analysis", "response", "result"}

// NewAnalysisResult builds a result from an upstream JSON body. Payloads
// without any of PrimaryTextKeys fall back to their compact JSON form.
func NewAnalysisResult(raw []byte) (*AnalysisResult, error) {
	var payload interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	result := &AnalysisResult{Raw: json.RawMessage(raw)}

	if fields, ok := payload.(map[string]interface{}); ok {
		for _, key := range PrimaryTextKeys {
			if text, ok := fields[key].(string); ok && text != "" {
				result.PrimaryText = text
				return result, nil
			}
		}
	}

	compact, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	result.PrimaryText = string(compact)

	return result, nil
}
