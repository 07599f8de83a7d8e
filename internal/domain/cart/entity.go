package cart

import (
	"errors"
	"strings"
	"time"

	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/pkg/money"

	"github.com/google/uuid"
)

var (
	ErrMissingCourseName = errors.New("course name is required")
	ErrMissingOwner      = errors.New("cart item must belong to a user")
)

// Item is one course in a learner's cart with the price captured when it was added.
type Item struct {
	id         uuid.UUID
	userID     uuid.UUID
	courseID   uuid.UUID
	courseName string
	price      money.Minor
	addedAt    time.Time
}

func NewItem(userID, courseID uuid.UUID, courseName string, price int64, now time.Time) (*Item, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingOwner
	}
	name := strings.TrimSpace(courseName)
	if name == "" {
		return nil, ErrMissingCourseName
	}
	p, err := money.NewMinor(price)
	if err != nil {
		return nil, err
	}
	return &Item{
		id:         uuid.New(),
		userID:     userID,
		courseID:   courseID,
		courseName: name,
		price:      p,
		addedAt:    now,
	}, nil
}

func ReconstructItem(id, userID, courseID uuid.UUID, courseName string, price int64, addedAt time.Time) *Item {
	return &Item{
		id:         id,
		userID:     userID,
		courseID:   courseID,
		courseName: courseName,
		price:      money.Minor(price),
		addedAt:    addedAt,
	}
}

func (i *Item) ID() uuid.UUID       { return i.id }
func (i *Item) UserID() uuid.UUID   { return i.userID }
func (i *Item) CourseID() uuid.UUID { return i.courseID }
func (i *Item) CourseName() string  { return i.courseName }
func (i *Item) Price() money.Minor  { return i.price }
func (i *Item) AddedAt() time.Time  { return i.addedAt }

// Cart is the durable per-user item set.
type Cart struct {
	userID uuid.UUID
	items  []*Item
}

func NewCart(userID uuid.UUID, items []*Item) *Cart {
	return &Cart{userID: userID, items: items}
}

func (c *Cart) UserID() uuid.UUID { return c.userID }
func (c *Cart) Items() []*Item    { return c.items }
func (c *Cart) IsEmpty() bool     { return len(c.items) == 0 }

// Total is the sum of the current line prices. It is not an order amount.
func (c *Cart) Total() money.Minor {
	var total money.Minor
	for _, it := range c.items {
		total += it.price
	}
	return total
}

func (c *Cart) Contains(courseID uuid.UUID) bool {
	return c.ItemForCourse(courseID) != nil
}

func (c *Cart) ItemForCourse(courseID uuid.UUID) *Item {
	for _, it := range c.items {
		if it.courseID == courseID {
			return it
		}
	}
	return nil
}

// CanAdd rejects a second line for the same course.
func (c *Cart) CanAdd(courseID uuid.UUID) error {
	if c.Contains(courseID) {
		return errs.ErrCourseAlreadyInCart
	}
	return nil
}

// Select returns the cart lines for the given courses, in the requested order.
// Any course that is not in the cart yields ErrCartItemNotFound.
func (c *Cart) Select(courseIDs []uuid.UUID) ([]*Item, error) {
	if len(courseIDs) == 0 {
		return nil, errs.ErrEmptyCart
	}
	seen := make(map[uuid.UUID]struct{}, len(courseIDs))
	out := make([]*Item, 0, len(courseIDs))
	for _, id := range courseIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		it := c.ItemForCourse(id)
		if it == nil {
			return nil, errs.Wrapf(errs.ErrCartItemNotFound, "course %s", id)
		}
		out = append(out, it)
	}
	return out, nil
}
