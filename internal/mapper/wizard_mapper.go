package mapper

import (
	"paraphrase-be/internal/dto"
	"paraphrase-be/pkg/rewrite"
	"paraphrase-be/pkg/wizard"
)

type WizardMapper struct{}

func NewWizardMapper() *WizardMapper {
	return &WizardMapper{}
}

func (m *WizardMapper) ToPatch(req *dto.UpdateFormRequest) wizard.FormPatch {
	return wizard.FormPatch{
		Name:            req.Name,
		Context:         req.Context,
		SystemSettings:  req.SystemSettings,
		MustHaveContent: req.MustHaveContent,
		Content:         req.Content,
		Prompt:          req.Prompt,
	}
}

func (m *WizardMapper) ToResponse(sessionID string, machine *wizard.Machine) *dto.WizardResponse {
	return &dto.WizardResponse{SessionID: sessionID, State: machine.Snapshot()}
}

func (m *WizardMapper) ToRewriteRequest(req *dto.ParaphraseRequest) rewrite.Request {
	return rewrite.Request{
		Content:         req.Content,
		Prompt:          req.Prompt,
		Name:            req.Name,
		Context:         req.Context,
		SystemSettings:  req.SystemSettings,
		MustHaveContent: req.MustHaveContent,
	}
}

func (m *WizardMapper) ToDeviceRequest(req *dto.DeviceInfoRequest) rewrite.DeviceRequest {
	return rewrite.DeviceRequest{
		SystemSettings: req.SystemSettings,
		Name:           req.Name,
		Context:        req.Context,
		Prompt:         req.Prompt,
	}
}
