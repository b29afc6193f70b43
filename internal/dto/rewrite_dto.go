package dto

import "paraphrase-be/pkg/rewrite"

type RewriteResponse struct {
	Busy   bool           `json:"busy"`
	Result rewrite.Result `json:"result"`
}

type ParaphraseRequest struct {
	Content         string `json:"content"`
	Prompt          string `json:"prompt"`
	Name            string `json:"name"`
	Context         string `json:"context"`
	SystemSettings  string `json:"systemSettings"`
	MustHaveContent string `json:"mustHaveContent"`
}

type ParaphraseResponse struct {
	Paragraphs []string `json:"paragraphs"`
}

type DeviceInfoRequest struct {
	SystemSettings string `json:"systemSettings"`
	Name           string `json:"name"`
	Context        string `json:"context"`
	Prompt         string `json:"prompt"`
}

type DeviceInfoResponse struct {
	DeviceInfo string `json:"deviceInfo"`
}
