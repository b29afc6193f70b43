package dto

import "paraphrase-be/pkg/wizard"

type UpdateFormRequest struct {
	Name            *string `json:"name"`
	Context         *string `json:"context"`
	SystemSettings  *string `json:"systemSettings"`
	MustHaveContent *string `json:"mustHaveContent"`
	Content         *string `json:"content"`
	Prompt          *string `json:"prompt"`
}

// ApplyPersonaRequest pre-fills the context section from a generated persona.
type ApplyPersonaRequest struct {
	Name    string `json:"name" validate:"required"`
	Context string `json:"context" validate:"required"`
}

// Section submits are validated by the wizard itself so that field errors
// land in the snapshot, not in the HTTP error body.
type SubmitContextRequest struct {
	Name    string `json:"name"`
	Context string `json:"context"`
}

type SubmitSystemRequest struct {
	SystemSettings string `json:"systemSettings"`
	Prompt         string `json:"prompt"`
}

type SubmitMustHaveRequest struct {
	MustHaveContent string `json:"mustHaveContent"`
}

type SubmitContentRequest struct {
	Content string `json:"content"`
}

type SetCollapsedRequest struct {
	Collapsed *bool `json:"collapsed" validate:"required"`
}

type GoToStepRequest struct {
	Step string `json:"step" validate:"required"`
}

type WizardResponse struct {
	SessionID string       `json:"session_id"`
	State     wizard.State `json:"state"`
}

type SubmitSectionResponse struct {
	Section  string         `json:"section"`
	Accepted bool           `json:"accepted"`
	Wizard   WizardResponse `json:"wizard"`
}
