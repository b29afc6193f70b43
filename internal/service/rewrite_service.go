package service

import (
	"context"

	"paraphrase-be/internal/dto"
	"paraphrase-be/internal/mapper"
	"paraphrase-be/pkg/rewrite"
	"paraphrase-be/pkg/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("paraphrase-be/service")

// DeviceDescriber turns raw system settings into prose.
type DeviceDescriber interface {
	DescribeDevice(ctx context.Context, req rewrite.DeviceRequest) (string, error)
}

type IRewriteService interface {
	// Submit runs the session's orchestrator. On failure the response still
	// carries the result with its MainError.
	Submit(ctx context.Context, sessionID string) (*dto.RewriteResponse, error)
	Result(ctx context.Context, sessionID string) (*dto.RewriteResponse, error)
	Paraphrase(ctx context.Context, req *dto.ParaphraseRequest) (*dto.ParaphraseResponse, error)
	DescribeDevice(ctx context.Context, req *dto.DeviceInfoRequest) (*dto.DeviceInfoResponse, error)
}

type rewriteService struct {
	sessions ISessionService
	rewriter rewrite.Rewriter
	device   DeviceDescriber
	mapper   *mapper.WizardMapper
}

func NewRewriteService(sessions ISessionService, rewriter rewrite.Rewriter, device DeviceDescriber) IRewriteService {
	return &rewriteService{
		sessions: sessions,
		rewriter: rewriter,
		device:   device,
		mapper:   mapper.NewWizardMapper(),
	}
}

func (s *rewriteService) Submit(ctx context.Context, sessionID string) (*dto.RewriteResponse, error) {
	ctx, span := tracer.Start(ctx, "rewrite.Submit")
	defer span.End()
	span.SetAttributes(attribute.String("session.id", sessionID))

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	res, err := sess.Rewrite.Submit(ctx)
	out := &dto.RewriteResponse{Busy: sess.Rewrite.Busy(), Result: res}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, res.MainError)
		return out, err
	}
	span.SetAttributes(attribute.Int("paragraphs.out", len(res.ParaphrasedParagraphs)))
	return out, nil
}

func (s *rewriteService) Result(ctx context.Context, sessionID string) (*dto.RewriteResponse, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &dto.RewriteResponse{Busy: sess.Rewrite.Busy(), Result: sess.Rewrite.Result()}, nil
}

func (s *rewriteService) Paraphrase(ctx context.Context, req *dto.ParaphraseRequest) (*dto.ParaphraseResponse, error) {
	ctx, span := tracer.Start(ctx, "rewrite.Paraphrase")
	defer span.End()

	if s.rewriter == nil {
		return nil, rewrite.ErrNotConfigured
	}
	text, err := s.rewriter.Rewrite(ctx, s.mapper.ToRewriteRequest(req))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &dto.ParaphraseResponse{Paragraphs: utils.SplitParagraphs(text)}, nil
}

func (s *rewriteService) DescribeDevice(ctx context.Context, req *dto.DeviceInfoRequest) (*dto.DeviceInfoResponse, error) {
	ctx, span := tracer.Start(ctx, "rewrite.DescribeDevice")
	defer span.End()

	if s.device == nil {
		return nil, rewrite.ErrNotConfigured
	}
	text, err := s.device.DescribeDevice(ctx, s.mapper.ToDeviceRequest(req))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &dto.DeviceInfoResponse{DeviceInfo: text}, nil
}
