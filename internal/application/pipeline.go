package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bnema/whatsavings/internal/domain"
	"github.com/bnema/whatsavings/internal/ports"
)

type Outcome string

const (
	OutcomeIgnored       Outcome = "ignored"
	OutcomeUnrecognized  Outcome = "unrecognized"
	OutcomeNonPositive   Outcome = "non_positive"
	OutcomePersistFailed Outcome = "persist_failed"
	OutcomeConfirmFailed Outcome = "confirm_failed"
	OutcomeConfirmed     Outcome = "confirmed"
)

type DepositPipeline struct {
	classifier *Classifier
	parser     *domain.AmountParser
	recorder   *Recorder
	confirmer  *Confirmer
	publisher  ports.DepositPublisher
	logger     *zap.Logger
}

type PipelineOption func(*DepositPipeline)

func WithPublisher(publisher ports.DepositPublisher) PipelineOption {
	return func(p *DepositPipeline) {
		p.publisher = publisher
	}
}

func WithPipelineLogger(logger *zap.Logger) PipelineOption {
	return func(p *DepositPipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func NewDepositPipeline(classifier *Classifier, parser *domain.AmountParser, recorder *Recorder, confirmer *Confirmer, opts ...PipelineOption) *DepositPipeline {
	if parser == nil {
		parser = domain.NewAmountParser(domain.DefaultCommandPrefix)
	}
	if confirmer == nil {
		confirmer = NewConfirmer()
	}

	p := &DepositPipeline{
		classifier: classifier,
		parser:     parser,
		recorder:   recorder,
		confirmer:  confirmer,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// HandleMessage processes one message delivered on an open session. Errors
// are logged here because nothing upstream can act on them.
func (p *DepositPipeline) HandleMessage(ctx context.Context, session ports.MessageSender, msg domain.RawMessage) {
	_, _ = p.Process(ctx, session, msg)
}

func (p *DepositPipeline) Process(ctx context.Context, session ports.MessageSender, msg domain.RawMessage) (Outcome, error) {
	event, verdict := p.classifier.Classify(msg)
	if verdict != domain.VerdictAccepted {
		p.logger.Debug("message ignored",
			zap.String("message_id", msg.ID),
			zap.String("verdict", string(verdict)))
		return OutcomeIgnored, nil
	}

	command := p.parser.Parse(event.Text)
	if !command.Recognized {
		return OutcomeUnrecognized, nil
	}
	if command.Amount <= 0 {
		p.logger.Debug("non-positive amount dropped",
			zap.String("message_id", event.MessageID),
			zap.Int64("amount", command.Amount))
		return OutcomeNonPositive, nil
	}

	record, err := p.recorder.Record(ctx, command.Amount, event.Sender, event.Text)
	if err != nil {
		p.logger.Error("record deposit",
			zap.String("message_id", event.MessageID),
			zap.Int64("amount", command.Amount),
			zap.Error(err))
		return OutcomePersistFailed, err
	}
	p.logger.Info("deposit recorded",
		zap.String("message_id", event.MessageID),
		zap.Int64("amount", record.Amount),
		zap.String("saved_at", record.SavedAtString()))

	p.publish(ctx, record)

	if err := p.confirmer.Confirm(ctx, session, event.ReplyTo, record.Amount); err != nil {
		p.logger.Warn("confirm deposit",
			zap.String("message_id", event.MessageID),
			zap.String("reply_to", event.ReplyTo),
			zap.Error(err))
		return OutcomeConfirmFailed, err
	}

	return OutcomeConfirmed, nil
}

func (p *DepositPipeline) publish(ctx context.Context, record domain.DepositRecord) {
	if p.publisher == nil {
		return
	}

	event := domain.NewDepositEvent(uuid.NewString(), record)
	if err := p.publisher.PublishDeposit(ctx, event); err != nil {
		p.logger.Warn("publish deposit event",
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}
