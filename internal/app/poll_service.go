// internal/app/poll_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"homework_status_bot/internal/domain/homework"
)

// ErrorReportPrefix starts every message that forwards a cycle failure to the chat.
const ErrorReportPrefix = "Сбой в работе программы: "

// StatusFetcher returns the decoded review API answer for changes since cursor.
type StatusFetcher interface {
	Fetch(ctx context.Context, cursor int64) (any, error)
}

// PollServiceConfig holds the tunables of a PollService.
type PollServiceConfig struct {
	// Endpoint is only used for log context.
	Endpoint string
	// EmptyAdvancesCursor moves the cursor to current_date when the API
	// reports no homeworks.
	EmptyAdvancesCursor bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// PollService runs single poll cycles. It owns the cursor and the last
// notified message; it is not safe for concurrent use.
type PollService struct {
	cfg       PollServiceConfig
	fetcher   StatusFetcher
	notifier  Notifier
	stateRepo homework.StateRepository
	logger    *logrus.Entry

	cursor      int64
	lastMessage string
}

func NewPollService(
	cfg PollServiceConfig,
	fetcher StatusFetcher,
	notifier Notifier,
	stateRepo homework.StateRepository,
	logger *logrus.Entry,
) *PollService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &PollService{
		cfg:       cfg,
		fetcher:   fetcher,
		notifier:  notifier,
		stateRepo: stateRepo,
		logger:    logger,
		cursor:    cfg.Now().Unix(),
	}
}

// Cursor returns the current watermark in unix seconds.
func (s *PollService) Cursor() int64 { return s.cursor }

// LastMessage returns the last status notification that was sent.
func (s *PollService) LastMessage() string { return s.lastMessage }

// Resume restores cursor and last message from the state repository.
// An empty repository leaves the start-up values untouched.
func (s *PollService) Resume(ctx context.Context) error {
	state, err := s.stateRepo.Load(ctx)
	if errors.Is(err, homework.ErrStateNotFound) {
		s.logger.WithField("cursor", s.cursor).Info("No saved poll state, starting from now")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "resume poll state")
	}
	s.cursor = state.Cursor
	s.lastMessage = state.LastMessage
	s.logger.WithFields(logrus.Fields{
		"cursor":     s.cursor,
		"updated_at": state.UpdatedAt,
	}).Info("Poll state resumed")
	return nil
}

// RunCycle performs one fetch-validate-format-notify pass. Every failure is
// handled here: logged, forwarded to the chat and returned for information.
func (s *PollService) RunCycle(ctx context.Context) error {
	cycleLog := s.logger.WithFields(logrus.Fields{
		"cycle_id": uuid.NewString(),
		"cursor":   s.cursor,
	})

	err := s.poll(ctx, cycleLog)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		cycleLog.WithError(err).Info("Cycle interrupted by shutdown")
		return err
	}
	s.handleCycleError(ctx, cycleLog, err)
	return err
}

func (s *PollService) poll(ctx context.Context, log *logrus.Entry) error {
	raw, err := s.fetcher.Fetch(ctx, s.cursor)
	if err != nil {
		return err
	}
	resp, err := homework.Validate(raw)
	if err != nil {
		return err
	}

	if len(resp.Homeworks) == 0 {
		log.Debug("No homework status changes")
		if s.cfg.EmptyAdvancesCursor {
			s.advance(resp.CurrentDate, log)
		}
		s.persist(ctx, log)
		return nil
	}

	message, err := homework.Render(resp.Homeworks[0])
	if err != nil {
		return err
	}

	if message == s.lastMessage {
		log.Info("Homework status unchanged, notification suppressed")
	} else {
		if err := s.notifier.Send(ctx, message); err != nil {
			return err
		}
		s.lastMessage = message
		log.WithField("homework", resp.Homeworks[0][homework.KeyName]).Info("Homework status sent")
	}

	s.advance(resp.CurrentDate, log)
	s.persist(ctx, log)
	return nil
}

// advance moves the cursor forward; it never moves back.
func (s *PollService) advance(next int64, log *logrus.Entry) {
	if next < s.cursor {
		log.WithField("current_date", next).Warn("Server cursor is behind local cursor, keeping local")
		return
	}
	s.cursor = next
}

func (s *PollService) persist(ctx context.Context, log *logrus.Entry) {
	state := &homework.PollState{
		Cursor:      s.cursor,
		LastMessage: s.lastMessage,
		UpdatedAt:   s.cfg.Now(),
	}
	if err := s.stateRepo.Save(ctx, state); err != nil {
		log.WithError(err).Error("Failed to save poll state")
	}
}

func (s *PollService) handleCycleError(ctx context.Context, log *logrus.Entry, err error) {
	kind := homework.KindOf(err)
	fields := logrus.Fields{
		"kind":     kind.String(),
		"endpoint": s.cfg.Endpoint,
	}

	switch kind {
	case homework.KindTransport:
		var e *homework.TransportError
		if errors.As(err, &e) {
			fields["params"] = e.Params.Encode()
		}
	case homework.KindRemoteStatus:
		var e *homework.RemoteStatusError
		if errors.As(err, &e) {
			fields["status_code"] = e.StatusCode
			fields["params"] = e.Params.Encode()
			fields["body"] = e.Body
		}
	case homework.KindDecode:
		var e *homework.DecodeError
		if errors.As(err, &e) {
			fields["body"] = e.Body
		}
	case homework.KindShape:
		var e *homework.ShapeError
		if errors.As(err, &e) {
			fields["field"] = e.Field
		}
	case homework.KindMissingField:
		var e *homework.MissingFieldError
		if errors.As(err, &e) {
			fields["field"] = e.Field
		}
	case homework.KindUnknownStatus:
		var e *homework.UnknownStatusError
		if errors.As(err, &e) {
			fields["status"] = e.Status
		}
	case homework.KindNotification:
		var e *homework.NotificationError
		if errors.As(err, &e) {
			fields["chat_id"] = e.ChatID
		}
	case homework.KindUnclassified:
		// Not part of the failure model: most likely a bug.
		fields["stack"] = fmt.Sprintf("%+v", err)
	}

	message := ErrorReportPrefix + err.Error()
	log.WithFields(fields).WithError(err).Error(message)

	if sendErr := s.notifier.Send(ctx, message); sendErr != nil {
		log.WithError(sendErr).Error("Failed to report cycle error to chat")
	}
}
