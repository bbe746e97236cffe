package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"github.com/decomontenegro/truelabel-sub001/internal/events"
	"github.com/decomontenegro/truelabel-sub001/internal/queue"
	"github.com/decomontenegro/truelabel-sub001/internal/repo"
	"github.com/decomontenegro/truelabel-sub001/internal/telemetry"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const DefaultCancelReason = "Cancelled by user"

// Config tunes the orchestrator. An empty AutoAssignStrategy disables
// auto-assignment on create.
type Config struct {
	SLA                   SLAPolicy
	ReviewerRoles         []domain.Role
	AutoAssignStrategy    string
	MaxAutoAssignAttempts int
}

type CreateQueueEntryInput struct {
	ProductID         string
	Category          string
	Priority          string
	EstimatedDuration *float64
	Notes             string
	Metadata          map[string]any
}

type ValidationQueueService struct {
	queueRepo    repo.ValidationQueueRepository
	historyRepo  repo.QueueActionLogRepository
	reviewerRepo repo.ReviewerRepository
	productRepo  repo.ProductRepository
	notifier     events.Notifier
	broker       queue.Broker
	cache        MetricsCache
	telemetry    *telemetry.Metrics
	cfg          Config
	logger       *zap.SugaredLogger
	now          func() time.Time
}

func NewValidationQueueService(
	queueRepo repo.ValidationQueueRepository,
	historyRepo repo.QueueActionLogRepository,
	reviewerRepo repo.ReviewerRepository,
	productRepo repo.ProductRepository,
	notifier events.Notifier,
	broker queue.Broker,
	cfg Config,
	logger *zap.SugaredLogger,
) *ValidationQueueService {
	if cfg.SLA.Base == nil {
		cfg.SLA = DefaultSLAPolicy()
	}
	if len(cfg.ReviewerRoles) == 0 {
		cfg.ReviewerRoles = []domain.Role{domain.RoleAdmin}
	}
	if cfg.MaxAutoAssignAttempts <= 0 {
		cfg.MaxAutoAssignAttempts = 3
	}
	if notifier == nil {
		notifier = events.Discard{}
	}

	return &ValidationQueueService{
		queueRepo:    queueRepo,
		historyRepo:  historyRepo,
		reviewerRepo: reviewerRepo,
		productRepo:  productRepo,
		notifier:     notifier,
		broker:       broker,
		cfg:          cfg,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// WithMetricsCache enables caching of unwindowed metrics.
func (s *ValidationQueueService) WithMetricsCache(cache MetricsCache) *ValidationQueueService {
	s.cache = cache
	return s
}

func (s *ValidationQueueService) WithTelemetry(m *telemetry.Metrics) *ValidationQueueService {
	s.telemetry = m
	return s
}

func (s *ValidationQueueService) CreateQueueEntry(ctx context.Context, actor domain.Actor, in CreateQueueEntryInput) (entry *domain.QueueEntry, err error) {
	defer func() { s.observe("create", err) }()

	if actor.Role != domain.RoleBrand {
		return nil, fmt.Errorf("%w: only brands can request validations", domain.ErrForbidden)
	}

	productID := strings.TrimSpace(in.ProductID)
	category := strings.TrimSpace(in.Category)
	if productID == "" {
		return nil, fmt.Errorf("%w: productId is required", domain.ErrValidation)
	}
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	priority, err := domain.ParsePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	if in.EstimatedDuration != nil && !(*in.EstimatedDuration > 0 && *in.EstimatedDuration <= MaxEstimatedHours) {
		return nil, fmt.Errorf("%w: estimatedDuration must be in (0, %d] hours", domain.ErrValidation, MaxEstimatedHours)
	}

	exists, err := s.productRepo.Exists(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, productID)
	}

	now := s.now()
	entry = &domain.QueueEntry{
		ProductID:         productID,
		RequestedByID:     actor.ID,
		Category:          category,
		Priority:          priority,
		PriorityRank:      priority.Rank(),
		Status:            domain.StatusPending,
		EstimatedDuration: in.EstimatedDuration,
		Notes:             in.Notes,
		Metadata:          in.Metadata,
		DueDate:           s.cfg.SLA.DueDate(now, priority, in.EstimatedDuration),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.queueRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create queue entry: %w", err)
	}

	s.logger.Infow("queue entry created",
		"queue_id", entry.ID.Hex(),
		"product_id", productID,
		"priority", priority,
		"due_date", entry.DueDate,
	)

	s.record(ctx, entry.ID, actor.ID, domain.ActionCreated, nil, entry.Status, "", nil, now)
	s.emit(ctx, domain.EventQueueCreated, entry, actor.ID, "", "", now)
	s.requestAutoAssignment(ctx, entry.ID)

	return entry, nil
}

// requestAutoAssignment hands the entry to the auto-assignment worker.
func (s *ValidationQueueService) requestAutoAssignment(ctx context.Context, id primitive.ObjectID) {
	if s.cfg.AutoAssignStrategy == "" || s.broker == nil {
		return
	}

	body, err := json.Marshal(domain.AutoAssignmentMessage{QueueID: id.Hex(), Strategy: s.cfg.AutoAssignStrategy})
	if err != nil {
		s.logger.Errorw("failed to marshal auto-assignment message", "queue_id", id.Hex(), "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueAutoAssignment, body); err != nil {
		s.logger.Errorw("failed to publish auto-assignment request", "queue_id", id.Hex(), "error", err)
		s.sideEffectFailed("auto_assign_publish")
	}
}

// GetQueue lists entries visible to actor. Brands only see their own
// requests.
func (s *ValidationQueueService) GetQueue(ctx context.Context, actor domain.Actor, filter domain.QueueFilter) (*domain.QueuePage, error) {
	switch {
	case actor.IsAdmin():
	case actor.Role == domain.RoleBrand:
		filter.RequestedByID = actor.ID
		filter.AssignedToID = ""
	default:
		return nil, fmt.Errorf("%w: role %s cannot list the queue", domain.ErrForbidden, actor.Role)
	}

	if err := filter.Normalize(); err != nil {
		return nil, err
	}

	entries, total, err := s.queueRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list queue: %w", err)
	}

	return &domain.QueuePage{
		Entries:    entries,
		Pagination: domain.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

func (s *ValidationQueueService) GetQueueEntry(ctx context.Context, actor domain.Actor, id primitive.ObjectID) (*domain.QueueEntry, error) {
	entry, err := s.queueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get queue entry: %w", err)
	}

	if !actor.IsAdmin() && entry.RequestedByID != actor.ID && !entry.IsAssignedTo(actor.ID) {
		return nil, fmt.Errorf("%w: no access to queue entry %s", domain.ErrForbidden, id.Hex())
	}

	return entry, nil
}

func (s *ValidationQueueService) AssignValidation(ctx context.Context, actor domain.Actor, id primitive.ObjectID, assignedToID string) (entry *domain.QueueEntry, err error) {
	defer func() { s.observe("assign", err) }()

	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can assign validations", domain.ErrForbidden)
	}

	assignedToID = strings.TrimSpace(assignedToID)
	if assignedToID == "" {
		return nil, fmt.Errorf("%w: assignedToId is required", domain.ErrValidation)
	}

	reviewer, err := s.reviewerRepo.GetByID(ctx, assignedToID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown reviewer %s", domain.ErrValidation, assignedToID)
		}
		return nil, fmt.Errorf("failed to get reviewer: %w", err)
	}
	if !s.isReviewerRole(reviewer.Role) {
		return nil, fmt.Errorf("%w: user %s cannot review validations", domain.ErrValidation, assignedToID)
	}

	entry, err = s.queueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get queue entry: %w", err)
	}

	now := s.now()
	if err := s.commitAssignment(ctx, entry, assignedToID, actor.ID, now, nil); err != nil {
		return nil, err
	}

	if err := s.reviewerRepo.TouchRotation(ctx, assignedToID, now); err != nil {
		s.logger.Warnw("failed to advance rotation pointer", "reviewer_id", assignedToID, "error", err)
	}

	return entry, nil
}

// commitAssignment performs the conditional assignment write and its side
// effects. entry is updated in place on success.
func (s *ValidationQueueService) commitAssignment(ctx context.Context, entry *domain.QueueEntry, reviewerID, actorID string, now time.Time, meta map[string]string) error {
	if entry.IsAssigned() {
		return fmt.Errorf("%w: queue entry %s is already assigned", domain.ErrInvalidTransition, entry.ID.Hex())
	}
	if entry.Status.IsTerminal() {
		return fmt.Errorf("%w: queue entry %s is %s", domain.ErrInvalidTransition, entry.ID.Hex(), entry.Status)
	}

	if err := s.queueRepo.Assign(ctx, entry.ID, entry.Status, reviewerID, now); err != nil {
		return fmt.Errorf("failed to assign queue entry: %w", err)
	}

	assignee := reviewerID
	assignedAt := now
	entry.AssignedToID = &assignee
	entry.AssignedAt = &assignedAt
	entry.UpdatedAt = now

	s.logger.Infow("queue entry assigned", "queue_id", entry.ID.Hex(), "assigned_to_id", reviewerID, "actor_id", actorID)

	if meta == nil {
		meta = map[string]string{}
	}
	meta["assigned_to_id"] = reviewerID
	status := entry.Status
	s.record(ctx, entry.ID, actorID, domain.ActionAssigned, &status, status, "", meta, now)
	s.emit(ctx, domain.EventQueueAssigned, entry, actorID, "", "", now)

	return nil
}

// UpdateStatus moves an entry along the transition table. Only admins and
// the current assignee may do so.
func (s *ValidationQueueService) UpdateStatus(ctx context.Context, actor domain.Actor, id primitive.ObjectID, newStatus domain.QueueStatus, reason string) (entry *domain.QueueEntry, err error) {
	defer func() { s.observe("update_status", err) }()

	newStatus, err = domain.ParseQueueStatus(string(newStatus))
	if err != nil {
		return nil, err
	}

	entry, err = s.queueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get queue entry: %w", err)
	}

	if !actor.IsAdmin() && !entry.IsAssignedTo(actor.ID) {
		return nil, fmt.Errorf("%w: only admins or the assignee can change status", domain.ErrForbidden)
	}

	if err := s.transition(ctx, entry, newStatus, actor.ID, domain.ActionStatusChanged, reason); err != nil {
		return nil, err
	}

	return entry, nil
}

// CancelQueueEntry fails a non-terminal entry. Only admins and the requester
// may cancel.
func (s *ValidationQueueService) CancelQueueEntry(ctx context.Context, actor domain.Actor, id primitive.ObjectID, reason string) (entry *domain.QueueEntry, err error) {
	defer func() { s.observe("cancel", err) }()

	entry, err = s.queueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get queue entry: %w", err)
	}

	if !actor.IsAdmin() && entry.RequestedByID != actor.ID {
		return nil, fmt.Errorf("%w: only admins or the requester can cancel", domain.ErrForbidden)
	}

	if strings.TrimSpace(reason) == "" {
		reason = DefaultCancelReason
	}

	if err := s.transition(ctx, entry, domain.StatusFailed, actor.ID, domain.ActionCancelled, reason); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *ValidationQueueService) transition(ctx context.Context, entry *domain.QueueEntry, to domain.QueueStatus, actorID, action, reason string) error {
	change, err := entry.PlanTransition(to, s.now())
	if err != nil {
		return err
	}

	if err := s.queueRepo.Transition(ctx, entry.ID, change); err != nil {
		return fmt.Errorf("failed to update queue entry status: %w", err)
	}

	entry.Apply(change)

	s.logger.Infow("queue entry status changed",
		"queue_id", entry.ID.Hex(),
		"from", change.From,
		"to", change.To,
		"actor_id", actorID,
	)
	if s.telemetry != nil {
		s.telemetry.Transitions.WithLabelValues(string(change.From), string(change.To)).Inc()
	}

	from := change.From
	s.record(ctx, entry.ID, actorID, action, &from, change.To, reason, nil, change.At)
	s.emit(ctx, domain.EventQueueStatusChanged, entry, actorID, change.From, reason, change.At)

	return nil
}

func (s *ValidationQueueService) GetQueueHistory(ctx context.Context, actor domain.Actor, id primitive.ObjectID) ([]domain.QueueActionLog, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can read queue history", domain.ErrForbidden)
	}

	if _, err := s.queueRepo.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to get queue entry: %w", err)
	}

	logs, err := s.historyRepo.GetByQueueID(ctx, id, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get queue history: %w", err)
	}

	return logs, nil
}

// record appends to the action log. Failures are logged and swallowed.
func (s *ValidationQueueService) record(ctx context.Context, queueID primitive.ObjectID, actorID, action string, prev *domain.QueueStatus, next domain.QueueStatus, reason string, meta map[string]string, at time.Time) {
	entry := &domain.QueueActionLog{
		QueueID:        queueID,
		ActorID:        actorID,
		Action:         action,
		PreviousStatus: prev,
		NewStatus:      next,
		Reason:         reason,
		Metadata:       meta,
		Timestamp:      at,
	}

	if err := s.historyRepo.Create(ctx, entry); err != nil {
		s.logger.Errorw("failed to append queue action log", "queue_id", queueID.Hex(), "action", action, "error", err)
		s.sideEffectFailed("action_log")
	}
}

func (s *ValidationQueueService) emit(ctx context.Context, eventType string, entry *domain.QueueEntry, actorID string, prev domain.QueueStatus, reason string, at time.Time) {
	snapshot := *entry
	event := domain.QueueEvent{
		ID:             uuid.NewString(),
		EventType:      eventType,
		QueueID:        entry.ID.Hex(),
		ProductID:      entry.ProductID,
		RequestedByID:  entry.RequestedByID,
		PreviousStatus: prev,
		Status:         entry.Status,
		Reason:         reason,
		ActorID:        actorID,
		Timestamp:      at,
		Entry:          &snapshot,
	}
	if entry.AssignedToID != nil {
		event.AssignedToID = *entry.AssignedToID
	}

	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Warnw("failed to broadcast queue event", "queue_id", event.QueueID, "event_type", eventType, "error", err)
		s.sideEffectFailed("broadcast")
	}
}

func (s *ValidationQueueService) isReviewerRole(role domain.Role) bool {
	for _, r := range s.cfg.ReviewerRoles {
		if r == role {
			return true
		}
	}
	return false
}

func (s *ValidationQueueService) observe(operation string, err error) {
	if s.telemetry == nil {
		return
	}
	s.telemetry.Operations.WithLabelValues(operation, telemetry.Outcome(err)).Inc()
}

func (s *ValidationQueueService) sideEffectFailed(kind string) {
	if s.telemetry == nil {
		return
	}
	s.telemetry.NotifyFailures.WithLabelValues(kind).Inc()
}
