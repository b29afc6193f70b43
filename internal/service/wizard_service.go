package service

import (
	"context"

	"paraphrase-be/internal/dto"
	"paraphrase-be/internal/mapper"
	"paraphrase-be/pkg/events"
	"paraphrase-be/pkg/store"
	"paraphrase-be/pkg/wizard"
)

type IWizardService interface {
	Snapshot(ctx context.Context, sessionID string) (*dto.WizardResponse, error)
	UpdateForm(ctx context.Context, sessionID string, req *dto.UpdateFormRequest) (*dto.WizardResponse, error)
	ApplyPersona(ctx context.Context, sessionID string, req *dto.ApplyPersonaRequest) (*dto.WizardResponse, error)
	SubmitContext(ctx context.Context, sessionID string, req *dto.SubmitContextRequest) (*dto.SubmitSectionResponse, error)
	SubmitSystem(ctx context.Context, sessionID string, req *dto.SubmitSystemRequest) (*dto.SubmitSectionResponse, error)
	SubmitMustHave(ctx context.Context, sessionID string, req *dto.SubmitMustHaveRequest) (*dto.SubmitSectionResponse, error)
	SubmitContent(ctx context.Context, sessionID string, req *dto.SubmitContentRequest) (*dto.SubmitSectionResponse, error)
	SetCollapsed(ctx context.Context, sessionID string, section string, req *dto.SetCollapsedRequest) (*dto.WizardResponse, error)
	GoToStep(ctx context.Context, sessionID string, req *dto.GoToStepRequest) (*dto.WizardResponse, error)
	Reset(ctx context.Context, sessionID string) (*dto.WizardResponse, error)
}

type wizardService struct {
	sessions ISessionService
	mapper   *mapper.WizardMapper
	events   IEventService
}

func NewWizardService(sessions ISessionService, events IEventService) IWizardService {
	return &wizardService{
		sessions: sessions,
		mapper:   mapper.NewWizardMapper(),
		events:   events,
	}
}

func (s *wizardService) Snapshot(ctx context.Context, sessionID string) (*dto.WizardResponse, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToResponse(sessionID, sess.Wizard), nil
}

func (s *wizardService) UpdateForm(ctx context.Context, sessionID string, req *dto.UpdateFormRequest) (*dto.WizardResponse, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Wizard.Update(s.mapper.ToPatch(req))
	return s.mapper.ToResponse(sessionID, sess.Wizard), nil
}

func (s *wizardService) ApplyPersona(ctx context.Context, sessionID string, req *dto.ApplyPersonaRequest) (*dto.WizardResponse, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Wizard.Update(wizard.FormPatch{Name: &req.Name, Context: &req.Context})
	return s.mapper.ToResponse(sessionID, sess.Wizard), nil
}

func (s *wizardService) SubmitContext(ctx context.Context, sessionID string, req *dto.SubmitContextRequest) (*dto.SubmitSectionResponse, error) {
	return s.submit(ctx, sessionID, wizard.SectionContext, func(m *wizard.Machine) (bool, error) {
		return m.SubmitContext(ctx, wizard.ContextInput{Name: req.Name, Context: req.Context})
	})
}

func (s *wizardService) SubmitSystem(ctx context.Context, sessionID string, req *dto.SubmitSystemRequest) (*dto.SubmitSectionResponse, error) {
	return s.submit(ctx, sessionID, wizard.SectionSystem, func(m *wizard.Machine) (bool, error) {
		return m.SubmitSystem(ctx, wizard.SystemInput{SystemSettings: req.SystemSettings, Prompt: req.Prompt})
	})
}

func (s *wizardService) SubmitMustHave(ctx context.Context, sessionID string, req *dto.SubmitMustHaveRequest) (*dto.SubmitSectionResponse, error) {
	return s.submit(ctx, sessionID, wizard.SectionMustHave, func(m *wizard.Machine) (bool, error) {
		return true, m.SubmitMustHave(ctx, wizard.MustHaveInput{MustHaveContent: req.MustHaveContent})
	})
}

func (s *wizardService) SubmitContent(ctx context.Context, sessionID string, req *dto.SubmitContentRequest) (*dto.SubmitSectionResponse, error) {
	return s.submit(ctx, sessionID, wizard.SectionContent, func(m *wizard.Machine) (bool, error) {
		return m.SubmitContent(ctx, wizard.ContentInput{Content: req.Content})
	})
}

func (s *wizardService) submit(ctx context.Context, sessionID string, section wizard.Section, run func(*wizard.Machine) (bool, error)) (*dto.SubmitSectionResponse, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	accepted, err := run(sess.Wizard)
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, events.NewSessionEvent(events.SectionSubmitted, sessionID, map[string]interface{}{
		"section":  string(section),
		"accepted": accepted,
	}))

	return &dto.SubmitSectionResponse{
		Section:  string(section),
		Accepted: accepted,
		Wizard:   *s.mapper.ToResponse(sessionID, sess.Wizard),
	}, nil
}

func (s *wizardService) SetCollapsed(ctx context.Context, sessionID string, section string, req *dto.SetCollapsedRequest) (*dto.WizardResponse, error) {
	sec, err := wizard.ParseSection(section)
	if err != nil {
		return nil, err
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Wizard.SetCollapsed(ctx, sec, *req.Collapsed); err != nil {
		return nil, err
	}
	return s.mapper.ToResponse(sessionID, sess.Wizard), nil
}

func (s *wizardService) GoToStep(ctx context.Context, sessionID string, req *dto.GoToStepRequest) (*dto.WizardResponse, error) {
	sec, err := wizard.ParseSection(req.Step)
	if err != nil {
		return nil, err
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Wizard.GoToStep(sec); err != nil {
		return nil, err
	}
	return s.mapper.ToResponse(sessionID, sess.Wizard), nil
}

// Reset clears the wizard, its durable records and the last rewrite result.
func (s *wizardService) Reset(ctx context.Context, sessionID string) (*dto.WizardResponse, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Wizard.Reset(ctx); err != nil {
		return nil, err
	}
	clearResult(sess)

	s.events.Publish(ctx, events.NewSessionEvent(events.WizardReset, sessionID, nil))
	return s.mapper.ToResponse(sessionID, sess.Wizard), nil
}

func clearResult(sess *store.Session) {
	if sess.Rewrite != nil && !sess.Rewrite.Busy() {
		sess.Rewrite.Clear()
	}
}
