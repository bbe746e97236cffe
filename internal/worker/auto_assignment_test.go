package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"github.com/decomontenegro/truelabel-sub001/internal/queue"
	"github.com/decomontenegro/truelabel-sub001/internal/service"
	"github.com/decomontenegro/truelabel-sub001/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type workerFixture struct {
	svc    *service.ValidationQueueService
	queue  *memory.ValidationQueueRepository
	broker *queue.MemoryBroker
	worker *AutoAssignmentWorker
}

func newWorkerFixture(t *testing.T) *workerFixture {
	t.Helper()

	broker := queue.NewMemoryBroker()
	queueRepo := memory.NewValidationQueueRepository()
	svc := service.NewValidationQueueService(
		queueRepo,
		memory.NewQueueActionLogRepository(),
		memory.NewReviewerRepository(
			domain.Reviewer{ID: "r1", Role: domain.RoleAdmin, Expertise: []string{"lab-report"}},
			domain.Reviewer{ID: "r2", Role: domain.RoleAdmin},
		),
		memory.NewProductRepository("prod-1"),
		nil,
		broker,
		service.Config{AutoAssignStrategy: "EXPERTISE_BASED"},
		zap.NewNop().Sugar(),
	)

	w := NewAutoAssignmentWorker(svc, broker, zap.NewNop().Sugar())
	t.Cleanup(w.Stop)

	return &workerFixture{svc: svc, queue: queueRepo, broker: broker, worker: w}
}

func TestAutoAssignmentWorker_AssignsOnCreate(t *testing.T) {
	f := newWorkerFixture(t)
	require.NoError(t, f.worker.Start())

	brand := domain.Actor{ID: "brand-1", Role: domain.RoleBrand}
	entry, err := f.svc.CreateQueueEntry(context.Background(), brand, service.CreateQueueEntryInput{
		ProductID: "prod-1",
		Category:  "lab-report",
	})
	require.NoError(t, err)

	stored, err := f.queue.GetByID(context.Background(), entry.ID)
	require.NoError(t, err)
	require.True(t, stored.IsAssigned())
	assert.Equal(t, "r1", *stored.AssignedToID)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestAutoAssignmentWorker_DrainsBacklog(t *testing.T) {
	f := newWorkerFixture(t)

	brand := domain.Actor{ID: "brand-1", Role: domain.RoleBrand}
	entry, err := f.svc.CreateQueueEntry(context.Background(), brand, service.CreateQueueEntryInput{
		ProductID: "prod-1",
		Category:  "nutrition",
	})
	require.NoError(t, err)
	require.Len(t, f.broker.Pending(queue.QueueAutoAssignment), 1)

	require.NoError(t, f.worker.Start())
	assert.Empty(t, f.broker.Pending(queue.QueueAutoAssignment))

	stored, err := f.queue.GetByID(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsAssigned(), "nobody has nutrition expertise")
}

func TestAutoAssignmentWorker_DropsBadMessages(t *testing.T) {
	f := newWorkerFixture(t)
	ctx := context.Background()

	assert.NoError(t, f.worker.handleMessage(ctx, []byte("{not json")))

	body, _ := json.Marshal(domain.AutoAssignmentMessage{QueueID: "xyz", Strategy: "ROUND_ROBIN"})
	assert.NoError(t, f.worker.handleMessage(ctx, body))

	body, _ = json.Marshal(domain.AutoAssignmentMessage{QueueID: primitive.NewObjectID().Hex(), Strategy: "ROUND_ROBIN"})
	assert.NoError(t, f.worker.handleMessage(ctx, body), "unknown entry")

	body, _ = json.Marshal(domain.AutoAssignmentMessage{QueueID: primitive.NewObjectID().Hex(), Strategy: "LOTTERY"})
	assert.NoError(t, f.worker.handleMessage(ctx, body), "unknown strategy")
}
