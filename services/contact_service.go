package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/artist-portfolio-backend/database"
	"github.com/rpupo63/artist-portfolio-backend/errs"
	"github.com/rpupo63/artist-portfolio-backend/metrics"
	"github.com/rpupo63/artist-portfolio-backend/models"
)

const statusUpdateTimeout = 5 * time.Second

// ContactInput is the payload of the public contact form.
type ContactInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,contactemail"`
	Description string `json:"description" validate:"required,max=5000"`
}

func (in *ContactInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Description = strings.TrimSpace(in.Description)
}

// ContactReceipt is what the submitter gets back.
type ContactReceipt struct {
	ID        string               `json:"id"`
	Status    models.ContactStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
}

// ContactService stores contact requests and notifies in the background.
type ContactService struct {
	requests    database.ContactRequestRepository
	notifiers   []Notifier
	sendTimeout time.Duration
	inFlight    sync.WaitGroup
	logger      zerolog.Logger
	now         func() time.Time
}

func NewContactService(requests database.ContactRequestRepository, notifiers []Notifier, sendTimeout time.Duration) *ContactService {
	if sendTimeout <= 0 {
		sendTimeout = 30 * time.Second
	}
	return &ContactService{
		requests:    requests,
		notifiers:   notifiers,
		sendTimeout: sendTimeout,
		logger:      log.With().Str("service", "contactService").Logger(),
		now:         time.Now,
	}
}

// Submit persists the request as pending and returns without waiting for
// notifications. Notification failures never fail the submission.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*ContactReceipt, error) {
	now := s.now()
	request := &models.ContactRequest{
		Name:        in.Name,
		Email:       in.Email,
		Description: in.Description,
		Status:      models.ContactStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, errs.NewDatabaseError("create", "contact request", err)
	}
	metrics.ContactRequestsTotal.Inc()

	receipt := &ContactReceipt{ID: request.ID, Status: request.Status, CreatedAt: request.CreatedAt}

	if len(s.notifiers) > 0 {
		s.inFlight.Add(1)
		go func(request models.ContactRequest) {
			defer s.inFlight.Done()
			s.dispatch(request)
		}(*request)
	}

	return receipt, nil
}

// dispatch runs detached from the request context, bounded by sendTimeout.
func (s *ContactService) dispatch(request models.ContactRequest) {
	start := s.now()
	ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
	defer cancel()

	logger := s.logger.With().Str("contactRequestID", request.ID).Logger()

	var g errgroup.Group
	for _, notifier := range s.notifiers {
		notifier := notifier
		g.Go(func() error {
			if err := notifier.Notify(ctx, request); err != nil {
				metrics.ContactNotificationsTotal.WithLabelValues(notifier.Channel(), metrics.OutcomeFailure).Inc()
				logger.Error().Err(err).Str("channel", notifier.Channel()).Msg("contact notification failed")
				return err
			}
			metrics.ContactNotificationsTotal.WithLabelValues(notifier.Channel(), metrics.OutcomeSuccess).Inc()
			return nil
		})
	}

	status := models.ContactStatusSent
	if err := g.Wait(); err != nil {
		status = models.ContactStatusFailed
	}
	metrics.ContactDispatchDuration.Observe(time.Since(start).Seconds())

	updateCtx, cancelUpdate := context.WithTimeout(context.Background(), statusUpdateTimeout)
	defer cancelUpdate()
	if err := s.requests.UpdateStatus(updateCtx, request.ID, status); err != nil {
		logger.Error().Err(err).Str("status", string(status)).Msg("could not record contact request status")
		return
	}
	logger.Info().Str("status", string(status)).Msg("contact notifications finished")
}

func (s *ContactService) List(ctx context.Context, page models.Page) ([]*models.ContactRequest, models.Pagination, error) {
	requests, total, err := s.requests.List(ctx, page)
	if err != nil {
		return nil, models.Pagination{}, errs.NewDatabaseError("list", "contact requests", err)
	}
	return requests, models.NewPagination(page, total), nil
}

// Wait blocks until every in-flight dispatch has finished.
func (s *ContactService) Wait() {
	s.inFlight.Wait()
}

// Drain is Wait bounded by ctx.
func (s *ContactService) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
