package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"github.com/decomontenegro/truelabel-sub001/internal/events"
	"github.com/decomontenegro/truelabel-sub001/internal/queue"
	"github.com/decomontenegro/truelabel-sub001/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	t0     = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	admin  = domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
	brand  = domain.Actor{ID: "brand-1", Role: domain.RoleBrand}
	other  = domain.Actor{ID: "brand-2", Role: domain.RoleBrand}
	r1     = domain.Actor{ID: "r1", Role: domain.RoleAdmin}
	labUsr = domain.Actor{ID: "lab-1", Role: domain.RoleLab}
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recorder struct {
	mu     sync.Mutex
	events []domain.QueueEvent
}

func (r *recorder) Notify(_ context.Context, e domain.QueueEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType)
	}
	return out
}

type fixture struct {
	svc       *ValidationQueueService
	queue     *memory.ValidationQueueRepository
	history   *memory.QueueActionLogRepository
	reviewers *memory.ReviewerRepository
	products  *memory.ProductRepository
	events    *recorder
	clock     *clock
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()

	f := &fixture{
		queue:   memory.NewValidationQueueRepository(),
		history: memory.NewQueueActionLogRepository(),
		reviewers: memory.NewReviewerRepository(
			domain.Reviewer{ID: "r1", Name: "Reviewer One", Role: domain.RoleAdmin, Expertise: []string{"lab-report"}},
			domain.Reviewer{ID: "r2", Name: "Reviewer Two", Role: domain.RoleAdmin, Expertise: []string{"claims"}},
			domain.Reviewer{ID: "r3", Name: "Reviewer Three", Role: domain.RoleAdmin, Expertise: []string{"lab-report", "claims"}},
		),
		products: memory.NewProductRepository("prod-1", "prod-2"),
		events:   &recorder{},
		clock:    &clock{now: t0},
	}

	f.svc = NewValidationQueueService(f.queue, f.history, f.reviewers, f.products, f.events, nil, cfg, zap.NewNop().Sugar())
	f.svc.now = f.clock.Now
	return f
}

func (f *fixture) create(t *testing.T, in CreateQueueEntryInput) *domain.QueueEntry {
	t.Helper()
	if in.ProductID == "" {
		in.ProductID = "prod-1"
	}
	if in.Category == "" {
		in.Category = "lab-report"
	}
	entry, err := f.svc.CreateQueueEntry(context.Background(), brand, in)
	require.NoError(t, err)
	return entry
}

func hours(h float64) *float64 { return &h }

func TestCreateQueueEntry(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	entry := f.create(t, CreateQueueEntryInput{Priority: "high", Notes: "urgent", Metadata: map[string]any{"batch": "42"}})

	assert.False(t, entry.ID.IsZero())
	assert.Equal(t, domain.StatusPending, entry.Status)
	assert.Equal(t, domain.PriorityHigh, entry.Priority)
	assert.Equal(t, "brand-1", entry.RequestedByID)
	assert.Equal(t, t0.Add(24*time.Hour), entry.DueDate)
	assert.True(t, entry.DueDate.After(entry.CreatedAt))
	assert.False(t, entry.IsAssigned())

	stored, err := f.queue.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "42", stored.Metadata["batch"])

	logs, err := f.history.GetByQueueID(ctx, entry.ID, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.ActionCreated, logs[0].Action)
	assert.Nil(t, logs[0].PreviousStatus)
	assert.Equal(t, []string{domain.EventQueueCreated}, f.events.Types())
}

func TestCreateQueueEntry_DefaultsToNormalPriority(t *testing.T) {
	f := newFixture(t, Config{})

	entry := f.create(t, CreateQueueEntryInput{})
	assert.Equal(t, domain.PriorityNormal, entry.Priority)
	assert.Equal(t, t0.Add(120*time.Hour), entry.DueDate)
}

func TestCreateQueueEntry_Rejections(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	tests := []struct {
		name  string
		actor domain.Actor
		in    CreateQueueEntryInput
		want  error
	}{
		{"admin cannot request", admin, CreateQueueEntryInput{ProductID: "prod-1", Category: "c"}, domain.ErrForbidden},
		{"lab cannot request", labUsr, CreateQueueEntryInput{ProductID: "prod-1", Category: "c"}, domain.ErrForbidden},
		{"missing product", brand, CreateQueueEntryInput{Category: "c"}, domain.ErrValidation},
		{"missing category", brand, CreateQueueEntryInput{ProductID: "prod-1", Category: "  "}, domain.ErrValidation},
		{"unknown priority", brand, CreateQueueEntryInput{ProductID: "prod-1", Category: "c", Priority: "URGENT"}, domain.ErrValidation},
		{"non-positive estimate", brand, CreateQueueEntryInput{ProductID: "prod-1", Category: "c", EstimatedDuration: hours(0)}, domain.ErrValidation},
		{"estimate over a year", brand, CreateQueueEntryInput{ProductID: "prod-1", Category: "c", EstimatedDuration: hours(MaxEstimatedHours + 1)}, domain.ErrValidation},
		{"unknown product", brand, CreateQueueEntryInput{ProductID: "nope", Category: "c"}, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateQueueEntry(ctx, tt.actor, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	page, err := f.svc.GetQueue(ctx, admin, domain.QueueFilter{})
	require.NoError(t, err)
	assert.Zero(t, page.Pagination.Total, "nothing persisted on rejected input")
	assert.Empty(t, f.events.Types())
}

func TestCreateQueueEntry_PublishesAutoAssignment(t *testing.T) {
	f := newFixture(t, Config{AutoAssignStrategy: "ROUND_ROBIN"})
	broker := queue.NewMemoryBroker()
	f.svc.broker = broker

	entry := f.create(t, CreateQueueEntryInput{})

	pending := broker.Pending(queue.QueueAutoAssignment)
	require.Len(t, pending, 1)
	assert.Contains(t, string(pending[0]), entry.ID.Hex())
	assert.Contains(t, string(pending[0]), "ROUND_ROBIN")
}

func TestLifecycleScenario(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	entry := f.create(t, CreateQueueEntryInput{Category: "lab-report", Priority: "HIGH"})
	assert.Equal(t, t0.Add(24*time.Hour), entry.DueDate)

	f.clock.Set(t0.Add(time.Minute))
	entry, err := f.svc.AssignValidation(ctx, admin, entry.ID, "r1")
	require.NoError(t, err)
	require.NotNil(t, entry.AssignedAt)
	assert.Equal(t, t0.Add(time.Minute), *entry.AssignedAt)
	assert.Equal(t, domain.StatusPending, entry.Status, "assignment does not start work")

	f.clock.Set(t0.Add(2 * time.Minute))
	entry, err = f.svc.UpdateStatus(ctx, r1, entry.ID, domain.StatusInProgress, "")
	require.NoError(t, err)
	require.NotNil(t, entry.StartedAt)
	assert.Equal(t, t0.Add(2*time.Minute), *entry.StartedAt)

	f.clock.Set(t0.Add(5 * time.Hour))
	entry, err = f.svc.UpdateStatus(ctx, r1, entry.ID, domain.StatusCompleted, "all claims verified")
	require.NoError(t, err)
	require.NotNil(t, entry.CompletedAt)
	assert.Equal(t, t0.Add(5*time.Hour), *entry.CompletedAt)
	require.NotNil(t, entry.ActualDuration)
	assert.InDelta(t, (4*time.Hour + 58*time.Minute).Hours(), *entry.ActualDuration, 1e-9)

	stored, err := f.queue.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	assert.InDelta(t, 4.9667, *stored.ActualDuration, 0.001)

	history, err := f.svc.GetQueueHistory(ctx, admin, entry.ID)
	require.NoError(t, err)
	actions := make([]string, 0, len(history))
	for _, h := range history {
		actions = append(actions, h.Action)
	}
	assert.Equal(t, []string{
		domain.ActionCreated,
		domain.ActionAssigned,
		domain.ActionStatusChanged,
		domain.ActionStatusChanged,
	}, actions)
	assert.Equal(t, "all claims verified", history[3].Reason)
	require.NotNil(t, history[3].PreviousStatus)
	assert.Equal(t, domain.StatusInProgress, *history[3].PreviousStatus)

	assert.Equal(t, []string{
		domain.EventQueueCreated,
		domain.EventQueueAssigned,
		domain.EventQueueStatusChanged,
		domain.EventQueueStatusChanged,
	}, f.events.Types())

	for _, to := range []domain.QueueStatus{domain.StatusPending, domain.StatusInProgress, domain.StatusFailed, domain.StatusCompleted} {
		_, err = f.svc.UpdateStatus(ctx, admin, entry.ID, to, "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "out of COMPLETED to %s", to)
	}
}

func TestUpdateStatus_StartRequiresAssignee(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()
	entry := f.create(t, CreateQueueEntryInput{})

	_, err := f.svc.UpdateStatus(ctx, admin, entry.ID, domain.StatusInProgress, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	stored, err := f.queue.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Nil(t, stored.StartedAt)
}

func TestUpdateStatus_Authorization(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()
	entry := f.create(t, CreateQueueEntryInput{})

	_, err := f.svc.AssignValidation(ctx, admin, entry.ID, "r1")
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, brand, entry.ID, domain.StatusInProgress, "")
	assert.ErrorIs(t, err, domain.ErrForbidden, "requester cannot drive the review")

	_, err = f.svc.UpdateStatus(ctx, domain.Actor{ID: "r2", Role: domain.RoleAdmin}, entry.ID, domain.StatusInProgress, "")
	assert.NoError(t, err, "admins may update any entry")

	_, err = f.svc.UpdateStatus(ctx, r1, entry.ID, "DONE", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateStatus_PendingToFailedWithoutDuration(t *testing.T) {
	f := newFixture(t, Config{})
	entry := f.create(t, CreateQueueEntryInput{})

	entry, err := f.svc.UpdateStatus(context.Background(), admin, entry.ID, domain.StatusFailed, "duplicate")
	require.NoError(t, err)
	assert.NotNil(t, entry.CompletedAt)
	assert.Nil(t, entry.ActualDuration, "never started")
}

func TestCancelQueueEntry(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	entry := f.create(t, CreateQueueEntryInput{})
	_, err := f.svc.CancelQueueEntry(ctx, other, entry.ID, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	cancelled, err := f.svc.CancelQueueEntry(ctx, brand, entry.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, cancelled.Status)

	logs, err := f.history.GetByQueueID(ctx, entry.ID, 0)
	require.NoError(t, err)
	last := logs[len(logs)-1]
	assert.Equal(t, domain.ActionCancelled, last.Action)
	assert.Equal(t, DefaultCancelReason, last.Reason)

	_, err = f.svc.UpdateStatus(ctx, admin, entry.ID, domain.StatusInProgress, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.svc.CancelQueueEntry(ctx, admin, entry.ID, "again")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancelQueueEntry_CustomReason(t *testing.T) {
	f := newFixture(t, Config{})
	entry := f.create(t, CreateQueueEntryInput{})

	_, err := f.svc.CancelQueueEntry(context.Background(), admin, entry.ID, "product withdrawn")
	require.NoError(t, err)

	logs, err := f.history.GetByQueueID(context.Background(), entry.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "product withdrawn", logs[len(logs)-1].Reason)
	assert.Equal(t, "admin-1", logs[len(logs)-1].ActorID)
}

func TestAssignValidation_Rejections(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()
	entry := f.create(t, CreateQueueEntryInput{})

	_, err := f.svc.AssignValidation(ctx, brand, entry.ID, "r1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.AssignValidation(ctx, admin, entry.ID, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.AssignValidation(ctx, admin, entry.ID, "ghost")
	assert.ErrorIs(t, err, domain.ErrValidation)

	f.reviewers.Put(domain.Reviewer{ID: "consumer-1", Role: domain.RoleConsumer})
	_, err = f.svc.AssignValidation(ctx, admin, entry.ID, "consumer-1")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.AssignValidation(ctx, admin, primitive.NewObjectID(), "r1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.AssignValidation(ctx, admin, entry.ID, "r1")
	require.NoError(t, err)

	_, err = f.svc.AssignValidation(ctx, admin, entry.ID, "r2")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "assignee is never replaced")

	failed := f.create(t, CreateQueueEntryInput{})
	_, err = f.svc.CancelQueueEntry(ctx, brand, failed.ID, "")
	require.NoError(t, err)
	_, err = f.svc.AssignValidation(ctx, admin, failed.ID, "r1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAssignValidation_AdvancesRotation(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()
	entry := f.create(t, CreateQueueEntryInput{})

	f.clock.Advance(time.Minute)
	_, err := f.svc.AssignValidation(ctx, admin, entry.ID, "r2")
	require.NoError(t, err)

	rv, err := f.reviewers.GetByID(ctx, "r2")
	require.NoError(t, err)
	require.NotNil(t, rv.LastAssignedAt)
	assert.Equal(t, t0.Add(time.Minute), *rv.LastAssignedAt)
	assert.Positive(t, rv.RotationSeq)

	next := f.create(t, CreateQueueEntryInput{})
	assigned, err := f.svc.TryAutoAssignment(ctx, next.ID, "ROUND_ROBIN")
	require.NoError(t, err)
	require.NotNil(t, assigned)
	assert.Equal(t, "r3", *assigned.AssignedToID, "rotation continues after the manual pick")
}

// barrierQueue holds every GetByID until n callers have read, so concurrent
// writers all act on the same stale view.
type barrierQueue struct {
	*memory.ValidationQueueRepository
	wg sync.WaitGroup
}

func (b *barrierQueue) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.QueueEntry, error) {
	e, err := b.ValidationQueueRepository.GetByID(ctx, id)
	b.wg.Done()
	b.wg.Wait()
	return e, err
}

func TestAssignValidation_ConcurrentCallsOneWins(t *testing.T) {
	f := newFixture(t, Config{})
	entry := f.create(t, CreateQueueEntryInput{})

	bq := &barrierQueue{ValidationQueueRepository: f.queue}
	bq.wg.Add(2)
	svc := NewValidationQueueService(bq, f.history, f.reviewers, f.products, f.events, nil, Config{}, zap.NewNop().Sugar())
	svc.now = f.clock.Now

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, reviewer := range []string{"r1", "r2"} {
		wg.Add(1)
		go func(i int, reviewer string) {
			defer wg.Done()
			_, errs[i] = svc.AssignValidation(context.Background(), admin, entry.ID, reviewer)
		}(i, reviewer)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case domain.IsRetryable(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)

	stored, err := f.queue.GetByID(context.Background(), entry.ID)
	require.NoError(t, err)
	require.True(t, stored.IsAssigned())

	logs, err := f.history.GetByQueueID(context.Background(), entry.ID, 0)
	require.NoError(t, err)
	assert.Len(t, logs, 2, "only the winner is logged")
}

func TestGetQueue_Scoping(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	mine := f.create(t, CreateQueueEntryInput{Priority: "HIGH"})
	f.clock.Advance(time.Minute)
	_, err := f.svc.CreateQueueEntry(ctx, other, CreateQueueEntryInput{ProductID: "prod-2", Category: "claims"})
	require.NoError(t, err)

	page, err := f.svc.GetQueue(ctx, brand, domain.QueueFilter{RequestedByID: "brand-2"})
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, mine.ID, page.Entries[0].ID)

	page, err = f.svc.GetQueue(ctx, admin, domain.QueueFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Pagination.Total)
	assert.Equal(t, "brand-2", page.Entries[0].RequestedByID, "newest first by default")

	_, err = f.svc.GetQueue(ctx, labUsr, domain.QueueFilter{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.GetQueue(ctx, admin, domain.QueueFilter{SortBy: "name"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetQueue_FiltersAndPagination(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		f.clock.Advance(time.Minute)
		f.create(t, CreateQueueEntryInput{Category: "lab-report"})
	}
	f.clock.Advance(time.Minute)
	claim := f.create(t, CreateQueueEntryInput{Category: "claims", Priority: "LOW"})
	_, err := f.svc.AssignValidation(ctx, admin, claim.ID, "r2")
	require.NoError(t, err)

	page, err := f.svc.GetQueue(ctx, admin, domain.QueueFilter{Category: "lab-report", Limit: 2, Page: 3, SortOrder: domain.SortAsc})
	require.NoError(t, err)
	assert.Equal(t, domain.Pagination{Page: 3, Limit: 2, Total: 5, Pages: 3}, page.Pagination)
	assert.Len(t, page.Entries, 1)

	low := domain.PriorityLow
	page, err = f.svc.GetQueue(ctx, admin, domain.QueueFilter{Priority: &low, AssignedToID: "r2"})
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, claim.ID, page.Entries[0].ID)
}

func TestGetQueueEntry_Access(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()
	entry := f.create(t, CreateQueueEntryInput{})
	_, err := f.svc.AssignValidation(ctx, admin, entry.ID, "r1")
	require.NoError(t, err)

	for _, actor := range []domain.Actor{admin, brand, r1} {
		_, err := f.svc.GetQueueEntry(ctx, actor, entry.ID)
		assert.NoError(t, err, actor.ID)
	}

	_, err = f.svc.GetQueueEntry(ctx, other, entry.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.GetQueueEntry(ctx, admin, primitive.NewObjectID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetQueueHistory_AdminOnly(t *testing.T) {
	f := newFixture(t, Config{})
	entry := f.create(t, CreateQueueEntryInput{})

	_, err := f.svc.GetQueueHistory(context.Background(), brand, entry.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.GetQueueHistory(context.Background(), admin, primitive.NewObjectID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type failingNotifier struct{}

func (failingNotifier) Notify(context.Context, domain.QueueEvent) error {
	return assert.AnError
}

func TestBroadcastFailureDoesNotFailMutation(t *testing.T) {
	f := newFixture(t, Config{})
	f.svc.notifier = events.Multi{failingNotifier{}, f.events}

	entry := f.create(t, CreateQueueEntryInput{})
	_, err := f.svc.AssignValidation(context.Background(), admin, entry.ID, "r1")
	require.NoError(t, err)

	assert.Equal(t, []string{domain.EventQueueCreated, domain.EventQueueAssigned}, f.events.Types())
}

func TestEventsCarryParticipants(t *testing.T) {
	f := newFixture(t, Config{})
	entry := f.create(t, CreateQueueEntryInput{})
	_, err := f.svc.AssignValidation(context.Background(), admin, entry.ID, "r1")
	require.NoError(t, err)

	f.events.mu.Lock()
	defer f.events.mu.Unlock()
	assigned := f.events.events[1]
	assert.Equal(t, "r1", assigned.AssignedToID)
	assert.Equal(t, "brand-1", assigned.RequestedByID)
	assert.Equal(t, "admin-1", assigned.ActorID)
	assert.True(t, assigned.Involves("r1"))
	assert.NotEmpty(t, assigned.ID)
}

func TestGetQueue_SortsPriorityByUrgency(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	for _, p := range []string{"LOW", "HIGH", "NORMAL", "MEDIUM"} {
		f.clock.Advance(time.Minute)
		entry := f.create(t, CreateQueueEntryInput{Priority: p})
		assert.Equal(t, entry.Priority.Rank(), entry.PriorityRank)
	}

	priorities := func(order string) []domain.Priority {
		page, err := f.svc.GetQueue(ctx, admin, domain.QueueFilter{SortBy: "priority", SortOrder: order})
		require.NoError(t, err)
		out := make([]domain.Priority, 0, len(page.Entries))
		for _, e := range page.Entries {
			out = append(out, e.Priority)
		}
		return out
	}

	assert.Equal(t, []domain.Priority{
		domain.PriorityHigh, domain.PriorityMedium, domain.PriorityNormal, domain.PriorityLow,
	}, priorities(domain.SortDesc))
	assert.Equal(t, []domain.Priority{
		domain.PriorityLow, domain.PriorityNormal, domain.PriorityMedium, domain.PriorityHigh,
	}, priorities(domain.SortAsc))
}
