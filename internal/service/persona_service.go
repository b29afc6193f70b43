package service

import (
	"context"

	"paraphrase-be/internal/dto"
	"paraphrase-be/internal/mapper"
	"paraphrase-be/pkg/events"
	"paraphrase-be/pkg/persona"
)

type IPersonaService interface {
	GenerateBatch(ctx context.Context, sessionID string, req *dto.GeneratePersonasRequest) []*dto.PersonaResponse
	GenerateConstrained(ctx context.Context, sessionID string, req *dto.ConstrainedPersonaRequest) *dto.PersonaResponse
}

type personaService struct {
	generator *persona.Generator
	mapper    *mapper.PersonaMapper
	events    IEventService
}

func NewPersonaService(generator *persona.Generator, events IEventService) IPersonaService {
	return &personaService{
		generator: generator,
		mapper:    mapper.NewPersonaMapper(),
		events:    events,
	}
}

func (s *personaService) GenerateBatch(ctx context.Context, sessionID string, req *dto.GeneratePersonasRequest) []*dto.PersonaResponse {
	batch := s.generator.GenerateBatch(req.Count)
	s.published(ctx, sessionID, len(batch))
	return s.mapper.ToResponses(batch)
}

func (s *personaService) GenerateConstrained(ctx context.Context, sessionID string, req *dto.ConstrainedPersonaRequest) *dto.PersonaResponse {
	p := s.generator.GenerateWithConstraints(s.mapper.ToConstraints(req))
	s.published(ctx, sessionID, 1)
	return s.mapper.ToResponse(p)
}

func (s *personaService) published(ctx context.Context, sessionID string, count int) {
	s.events.Publish(ctx, events.NewSessionEvent(events.PersonasGenerated, sessionID, map[string]interface{}{
		"count": count,
	}))
}
