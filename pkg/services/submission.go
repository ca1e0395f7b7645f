package services

import (
	"context"
	"log"
	"time"

	"lead-capture/pkg/clients/yookassa"
	"lead-capture/pkg/config"
	"lead-capture/pkg/models"
	"lead-capture/pkg/utils"
)

// LeadSubmissionService defines the interface for handling landing page leads
type LeadSubmissionService interface {
	ProcessLeadSubmission(ctx context.Context, raw []byte) (models.RedirectResult, error)
	DynamicPaymentsEnabled() bool
}

type leadSubmissionServiceImpl struct {
	payments yookassa.Client
	sinks    []Sink
	config   *config.Config
	now      func() time.Time
}

// NewLeadSubmissionService creates a new submission service. payments may be
// nil when no provider credentials are configured.
func NewLeadSubmissionService(
	payments yookassa.Client,
	sinks []Sink,
	config *config.Config,
) LeadSubmissionService {
	return &leadSubmissionServiceImpl{
		payments: payments,
		sinks:    sinks,
		config:   config,
		now:      time.Now,
	}
}

func (s *leadSubmissionServiceImpl) DynamicPaymentsEnabled() bool {
	return s.payments != nil && s.config.YooKassa.Enabled()
}

// ProcessLeadSubmission handles the entire submission workflow. The only
// errors returned are ErrNotionKeyMissing and ErrMalformedBody; everything
// after parsing degrades to the static payment link.
func (s *leadSubmissionServiceImpl) ProcessLeadSubmission(ctx context.Context, raw []byte) (models.RedirectResult, error) {
	if s.config.Notion.Required && !s.config.Notion.Enabled() {
		return models.RedirectResult{}, ErrNotionKeyMissing
	}

	sub, err := DecodeSubmission(raw)
	if err != nil {
		return models.RedirectResult{}, err
	}

	now := s.now()
	lead := Normalize(sub, s.config.Pricing, now)
	log.Printf("[Submission] Lead %s: amount=%d method=%s status=%s",
		utils.HashString(lead.PhoneOrEmpty()+lead.EmailOrEmpty()), lead.Amount, lead.PaymentMethod, lead.Status)

	redirectURL := ResolvePaymentLink(s.config.Pricing, lead.PaymentMethod, lead.Amount)
	if url, ok := tryCreateDynamicSession(ctx, s.payments, s.config.YooKassa, lead, now); ok {
		redirectURL = url
	}

	s.persist(ctx, lead)

	return models.RedirectResult{RedirectURL: redirectURL}, nil
}

func (s *leadSubmissionServiceImpl) persist(ctx context.Context, lead models.NormalizedLead) {
	if len(s.sinks) == 0 {
		return
	}

	if s.config.Server.SinksDetached {
		detached := context.WithoutCancel(ctx)
		go func() {
			LogSinkResults(PersistAll(detached, s.sinks, lead))
		}()
		return
	}

	LogSinkResults(PersistAll(ctx, s.sinks, lead))
}
