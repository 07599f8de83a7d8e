//go:build unit

// Package memstore is an in-memory shared.UnitOfWork for use case tests.
// Within runs the callback against the live state and restores a snapshot when it fails.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"learnhub-checkout/internal/domain/cart"
	"learnhub-checkout/internal/domain/enrollment"
	"learnhub-checkout/internal/domain/order"
	"learnhub-checkout/internal/infra"
	"learnhub-checkout/internal/infra/sqlc"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

var errInjected = errs.New("injected failure")

type enrollmentKey struct {
	studentID uuid.UUID
	courseID  uuid.UUID
}

type idempotencyKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

type outboxRow struct {
	msg  shared.OutboxMessage
	sent bool
}

type state struct {
	courses     map[uuid.UUID]shared.CourseSnapshot
	discounts   map[string]shared.DiscountSnapshot
	carts       map[uuid.UUID][]*cart.Item
	orders      map[uuid.UUID]order.ReconstructParams
	enrollments map[enrollmentKey]*enrollment.Enrollment
	steps       map[uuid.UUID][]shared.ProvisioningStep
	payments    map[string]uuid.UUID
	idempotency map[idempotencyKey]shared.IdempotencyRecord
	outbox      []outboxRow
	outboxSeq   int64
}

func newState() *state {
	return &state{
		courses:     map[uuid.UUID]shared.CourseSnapshot{},
		discounts:   map[string]shared.DiscountSnapshot{},
		carts:       map[uuid.UUID][]*cart.Item{},
		orders:      map[uuid.UUID]order.ReconstructParams{},
		enrollments: map[enrollmentKey]*enrollment.Enrollment{},
		steps:       map[uuid.UUID][]shared.ProvisioningStep{},
		payments:    map[string]uuid.UUID{},
		idempotency: map[idempotencyKey]shared.IdempotencyRecord{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.courses {
		c.courses[k] = v
	}
	for k, v := range s.discounts {
		c.discounts[k] = v
	}
	for k, v := range s.carts {
		c.carts[k] = append([]*cart.Item(nil), v...)
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.enrollments {
		c.enrollments[k] = v
	}
	for k, v := range s.steps {
		c.steps[k] = append([]shared.ProvisioningStep(nil), v...)
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	for k, v := range s.idempotency {
		c.idempotency[k] = v
	}
	c.outbox = append([]outboxRow(nil), s.outbox...)
	c.outboxSeq = s.outboxSeq
	return c
}

type Store struct {
	mu    sync.RWMutex
	state *state

	// upsertFailures counts the remaining injected Upsert failures per course.
	upsertFailures map[uuid.UUID]int
	failOrderWrite bool
	commits        int
	rollbacks      int
}

func New() *Store {
	return &Store{state: newState(), upsertFailures: map[uuid.UUID]int{}}
}

var _ shared.UnitOfWork = (*Store)(nil)

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(ctx, &tx{s: s}); err != nil {
		s.state = snapshot
		s.rollbacks++
		return err
	}
	s.commits++
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(ctx, nil)
}

func (s *Store) WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *Store) CommandReads() shared.CommandReads {
	return &lockedReads{s: s}
}

// Fault injection

// FailUpserts makes the next n enrollment upserts for courseID fail.
func (s *Store) FailUpserts(courseID uuid.UUID, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertFailures[courseID] = n
}

// FailOrderWrites makes Orders().Create and UpdateState fail until reset.
func (s *Store) FailOrderWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOrderWrite = fail
}

func (s *Store) Rollbacks() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rollbacks
}

// Seeding

func (s *Store) AddCourse(c shared.CourseSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.courses[c.ID] = c
}

func (s *Store) AddDiscount(d shared.DiscountSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.discounts[d.Code] = d
}

func (s *Store) AddCartItems(items ...*cart.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		s.state.carts[it.UserID()] = append(s.state.carts[it.UserID()], it)
	}
}

func (s *Store) PutOrder(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.orders[o.ID()] = paramsOf(o)
}

func (s *Store) PutEnrollment(e *enrollment.Enrollment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.enrollments[enrollmentKey{e.StudentID(), e.CourseID()}] = e
}

func (s *Store) PutIdempotency(rec shared.IdempotencyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.idempotency[idempotencyKey{rec.Key, rec.UserID}] = rec
}

// Inspection

func (s *Store) Order(id uuid.UUID) *order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.state.orders[id]
	if !ok {
		return nil
	}
	return order.Reconstruct(p)
}

func (s *Store) Orders() []*order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*order.Order, 0, len(s.state.orders))
	for _, p := range s.state.orders {
		out = append(out, order.Reconstruct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out
}

func (s *Store) Enrollment(studentID, courseID uuid.UUID) *enrollment.Enrollment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.enrollments[enrollmentKey{studentID, courseID}]
}

func (s *Store) Steps(orderID uuid.UUID) []shared.ProvisioningStep {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]shared.ProvisioningStep(nil), s.state.steps[orderID]...)
}

func (s *Store) CartItems(userID uuid.UUID) []*cart.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*cart.Item(nil), s.state.carts[userID]...)
}

func (s *Store) Idempotency(key, userID uuid.UUID) (shared.IdempotencyRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.state.idempotency[idempotencyKey{key, userID}]
	return rec, ok
}

// Events returns every outbox event type in insertion order.
func (s *Store) Events() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.state.outbox))
	for i, row := range s.state.outbox {
		out[i] = row.msg.EventType
	}
	return out
}

func (s *Store) UnsentEvents() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, row := range s.state.outbox {
		if !row.sent {
			n++
		}
	}
	return n
}

func paramsOf(o *order.Order) order.ReconstructParams {
	return order.ReconstructParams{
		ID:               o.ID(),
		UserID:           o.UserID(),
		Items:            append([]order.LineItem(nil), o.Items()...),
		Subtotal:         o.Subtotal().Int64(),
		DiscountAmount:   o.DiscountAmount().Int64(),
		Amount:           o.Amount().Int64(),
		DiscountCode:     o.DiscountCode().String(),
		Currency:         o.Currency(),
		Status:           o.Status(),
		PaymentMode:      o.PaymentMode(),
		GatewaySessionID: o.GatewaySessionID(),
		PaymentID:        o.PaymentID(),
		FailureReason:    string(o.FailureReason()),
		Customer:         o.Customer(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
		VerifiedAt:       o.VerifiedAt(),
		CompletedAt:      o.CompletedAt(),
	}
}

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", errs.New("no rows in result set"), infra.KindNotFound)
}

func injected(what string) error {
	return infra.WrapRepoErr(what, errInjected, infra.KindDBFailure)
}

// ================================================================================
// Tx
// ================================================================================

type tx struct {
	s *Store
}

func (t *tx) st() *state                                   { return t.s.state }
func (t *tx) Carts() shared.CartRepository                 { return cartRepo{t} }
func (t *tx) Orders() shared.OrderRepository               { return orderRepo{t} }
func (t *tx) Enrollments() shared.EnrollmentRepository     { return enrollmentRepo{t} }
func (t *tx) Provisioning() shared.ProvisioningRepository  { return provisioningRepo{t} }
func (t *tx) PaymentEvents() shared.PaymentEventRepository { return paymentEventRepo{t} }
func (t *tx) Idempotency() shared.IdempotencyRepository    { return idempotencyRepo{t} }
func (t *tx) Outbox() shared.OutboxRepository              { return outboxRepo{t} }
func (t *tx) Reads() shared.CommandReads                   { return reads{st: t.st} }
func (t *tx) DB() sqlc.DBTX                                { return nil }

// lockedReads serves CommandReads outside of a transaction.
type lockedReads struct {
	s *Store
}

func (r *lockedReads) inner() reads {
	return reads{st: func() *state { return r.s.state }}
}

func (r *lockedReads) CourseByID(ctx context.Context, id uuid.UUID) (*shared.CourseSnapshot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.inner().CourseByID(ctx, id)
}

func (r *lockedReads) DiscountByCode(ctx context.Context, code string) (*shared.DiscountSnapshot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.inner().DiscountByCode(ctx, code)
}

func (r *lockedReads) CartByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.inner().CartByUser(ctx, userID)
}

func (r *lockedReads) EnrollmentByKey(ctx context.Context, studentID, courseID uuid.UUID) (*enrollment.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.inner().EnrollmentByKey(ctx, studentID, courseID)
}

func (r *lockedReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.inner().IdempotencyByKey(ctx, key, userID)
}

type reads struct {
	st func() *state
}

func (r reads) CourseByID(_ context.Context, id uuid.UUID) (*shared.CourseSnapshot, error) {
	c, ok := r.st().courses[id]
	if !ok {
		return nil, notFound("course")
	}
	return &c, nil
}

func (r reads) DiscountByCode(_ context.Context, code string) (*shared.DiscountSnapshot, error) {
	d, ok := r.st().discounts[code]
	if !ok {
		return nil, notFound("discount code")
	}
	return &d, nil
}

func (r reads) CartByUser(_ context.Context, userID uuid.UUID) (*cart.Cart, error) {
	items := append([]*cart.Item(nil), r.st().carts[userID]...)
	return cart.NewCart(userID, items), nil
}

func (r reads) EnrollmentByKey(_ context.Context, studentID, courseID uuid.UUID) (*enrollment.Enrollment, error) {
	e, ok := r.st().enrollments[enrollmentKey{studentID, courseID}]
	if !ok {
		return nil, notFound("enrollment")
	}
	return e, nil
}

func (r reads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.st().idempotency[idempotencyKey{key, userID}]
	if !ok {
		return nil, notFound("idempotency key")
	}
	return &rec, nil
}

// ================================================================================
// Repositories
// ================================================================================

type cartRepo struct{ t *tx }

func (r cartRepo) Add(_ context.Context, _ sqlc.DBTX, item *cart.Item) error {
	st := r.t.st()
	for _, existing := range st.carts[item.UserID()] {
		if existing.CourseID() == item.CourseID() {
			return infra.WrapRepoErr("course already in cart", errs.New("unique violation"), infra.KindDuplicateKey)
		}
	}
	st.carts[item.UserID()] = append(st.carts[item.UserID()], item)
	return nil
}

func (r cartRepo) Remove(_ context.Context, _ sqlc.DBTX, userID, itemID uuid.UUID) error {
	st := r.t.st()
	items := st.carts[userID]
	for i, it := range items {
		if it.ID() == itemID {
			st.carts[userID] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return notFound("cart item")
}

func (r cartRepo) RemoveCourses(_ context.Context, _ sqlc.DBTX, userID uuid.UUID, courseIDs []uuid.UUID) (int64, error) {
	st := r.t.st()
	drop := make(map[uuid.UUID]struct{}, len(courseIDs))
	for _, id := range courseIDs {
		drop[id] = struct{}{}
	}
	var (
		kept    []*cart.Item
		removed int64
	)
	for _, it := range st.carts[userID] {
		if _, ok := drop[it.CourseID()]; ok {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	st.carts[userID] = kept
	return removed, nil
}

type orderRepo struct{ t *tx }

func (r orderRepo) Create(_ context.Context, _ sqlc.DBTX, o *order.Order) error {
	if r.t.s.failOrderWrite {
		return injected("failed to create order")
	}
	st := r.t.st()
	if _, exists := st.orders[o.ID()]; exists {
		return infra.WrapRepoErr("order exists", errs.New("unique violation"), infra.KindDuplicateKey)
	}
	st.orders[o.ID()] = paramsOf(o)
	return nil
}

func (r orderRepo) Get(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*order.Order, error) {
	p, ok := r.t.st().orders[id]
	if !ok {
		return nil, notFound("order")
	}
	return order.Reconstruct(p), nil
}

func (r orderRepo) GetForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (*order.Order, error) {
	return r.Get(ctx, db, id)
}

func (r orderRepo) UpdateState(_ context.Context, _ sqlc.DBTX, o *order.Order) error {
	if r.t.s.failOrderWrite {
		return injected("failed to update order")
	}
	st := r.t.st()
	if _, ok := st.orders[o.ID()]; !ok {
		return notFound("order")
	}
	st.orders[o.ID()] = paramsOf(o)
	return nil
}

func (r orderRepo) ExpireStale(_ context.Context, _ sqlc.DBTX, createdBefore time.Time) (int64, error) {
	st := r.t.st()
	var n int64
	for id, p := range st.orders {
		if !p.Status.IsOpen() || !p.CreatedAt.Before(createdBefore) {
			continue
		}
		p.Status = order.StatusExpired
		p.UpdatedAt = time.Now()
		st.orders[id] = p
		n++
	}
	return n, nil
}

func (r orderRepo) PaidOrdersWithCourses(_ context.Context, _ sqlc.DBTX, userID, excludeOrderID uuid.UUID, courseIDs []uuid.UUID) ([]uuid.UUID, error) {
	want := make(map[uuid.UUID]struct{}, len(courseIDs))
	for _, id := range courseIDs {
		want[id] = struct{}{}
	}
	var out []uuid.UUID
	for id, p := range r.t.st().orders {
		if id == excludeOrderID || p.UserID != userID || !p.Status.IsPaid() {
			continue
		}
		for _, it := range p.Items {
			if _, ok := want[it.CourseID]; ok {
				out = append(out, id)
				break
			}
		}
	}
	return out, nil
}

type enrollmentRepo struct{ t *tx }

func (r enrollmentRepo) GetForUpdate(_ context.Context, _ sqlc.DBTX, studentID, courseID uuid.UUID) (*enrollment.Enrollment, error) {
	return r.t.st().enrollments[enrollmentKey{studentID, courseID}], nil
}

func (r enrollmentRepo) Upsert(_ context.Context, _ sqlc.DBTX, e *enrollment.Enrollment) (*enrollment.Enrollment, error) {
	if n := r.t.s.upsertFailures[e.CourseID()]; n > 0 {
		r.t.s.upsertFailures[e.CourseID()] = n - 1
		return nil, injected("failed to upsert enrollment")
	}
	st := r.t.st()
	key := enrollmentKey{e.StudentID(), e.CourseID()}
	stored := e
	if prev, ok := st.enrollments[key]; ok {
		expires := e.ExpiresAt()
		if prev.ExpiresAt().After(expires) {
			expires = prev.ExpiresAt()
		}
		stored = enrollment.Reconstruct(e.StudentID(), e.CourseID(), true, expires, prev.CreatedAt(), e.UpdatedAt())
	}
	st.enrollments[key] = stored
	return stored, nil
}

type provisioningRepo struct{ t *tx }

func (r provisioningRepo) Seed(_ context.Context, _ sqlc.DBTX, orderID uuid.UUID, courseIDs []uuid.UUID, _ time.Time) error {
	st := r.t.st()
	have := make(map[uuid.UUID]struct{})
	for _, step := range st.steps[orderID] {
		have[step.CourseID] = struct{}{}
	}
	for _, id := range courseIDs {
		if _, ok := have[id]; ok {
			continue
		}
		st.steps[orderID] = append(st.steps[orderID], shared.ProvisioningStep{
			OrderID:  orderID,
			CourseID: id,
			Outcome:  enrollment.OutcomePending,
		})
	}
	return nil
}

func (r provisioningRepo) List(_ context.Context, _ sqlc.DBTX, orderID uuid.UUID) ([]shared.ProvisioningStep, error) {
	return append([]shared.ProvisioningStep(nil), r.t.st().steps[orderID]...), nil
}

func (r provisioningRepo) Record(_ context.Context, _ sqlc.DBTX, step shared.ProvisioningStep, _ time.Time) error {
	steps := r.t.st().steps[step.OrderID]
	for i := range steps {
		if steps[i].CourseID == step.CourseID {
			attempts := steps[i].Attempts + 1
			steps[i] = step
			steps[i].Attempts = attempts
			return nil
		}
	}
	return notFound("provisioning step")
}

type paymentEventRepo struct{ t *tx }

func (r paymentEventRepo) Record(_ context.Context, _ sqlc.DBTX, paymentID string, orderID uuid.UUID, _ string, _ time.Time) (bool, error) {
	st := r.t.st()
	if _, seen := st.payments[paymentID]; seen {
		return false, nil
	}
	st.payments[paymentID] = orderID
	return true, nil
}

type idempotencyRepo struct{ t *tx }

func (r idempotencyRepo) TryInsert(_ context.Context, _ sqlc.DBTX, key, userID uuid.UUID, _ string, requestHash string, expiresAt time.Time) (bool, error) {
	st := r.t.st()
	k := idempotencyKey{key, userID}
	if prev, ok := st.idempotency[k]; ok && !prev.ExpiresAt.Before(time.Now()) {
		return false, nil
	}
	st.idempotency[k] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      shared.IdempotencyProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r idempotencyRepo) UpdateStatusCompleted(_ context.Context, _ sqlc.DBTX, key, userID uuid.UUID, orderID uuid.UUID) error {
	st := r.t.st()
	k := idempotencyKey{key, userID}
	rec, ok := st.idempotency[k]
	if !ok {
		return notFound("idempotency key")
	}
	rec.Status = shared.IdempotencyCompleted
	rec.ResultOrderID = &orderID
	st.idempotency[k] = rec
	return nil
}

func (r idempotencyRepo) DeleteExpired(_ context.Context, _ sqlc.DBTX) (int64, error) {
	st := r.t.st()
	now := time.Now()
	var n int64
	for k, rec := range st.idempotency {
		if rec.ExpiresAt.Before(now) {
			delete(st.idempotency, k)
			n++
		}
	}
	return n, nil
}

type outboxRepo struct{ t *tx }

func (r outboxRepo) Insert(_ context.Context, _ sqlc.DBTX, event shared.OutboxEvent) error {
	st := r.t.st()
	st.outboxSeq++
	st.outbox = append(st.outbox, outboxRow{msg: shared.OutboxMessage{ID: st.outboxSeq, OutboxEvent: event}})
	return nil
}

func (r outboxRepo) FetchPending(_ context.Context, _ sqlc.DBTX, limit int) ([]shared.OutboxMessage, error) {
	var out []shared.OutboxMessage
	for _, row := range r.t.st().outbox {
		if len(out) == limit {
			break
		}
		if !row.sent {
			out = append(out, row.msg)
		}
	}
	return out, nil
}

func (r outboxRepo) MarkSent(_ context.Context, _ sqlc.DBTX, id int64) error {
	st := r.t.st()
	for i := range st.outbox {
		if st.outbox[i].msg.ID == id {
			st.outbox[i].sent = true
			return nil
		}
	}
	return notFound("outbox event")
}
