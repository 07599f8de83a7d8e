package response

import (
	"time"

	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type EnrollmentResponse struct {
	CourseID    uuid.UUID `json:"courseId"`
	CourseTitle string    `json:"courseTitle"`
	IsActive    bool      `json:"isActive"`
	ExpiresAt   time.Time `json:"expiresAt"`
	HasAccess   bool      `json:"hasAccess"`
}

func FromEnrollmentViews(views []*queries.EnrollmentView) ([]EnrollmentResponse, error) {
	res := make([]EnrollmentResponse, 0, len(views))
	if err := copier.Copy(&res, views); err != nil {
		return nil, errs.Wrap(err, "map enrollments")
	}
	return res, nil
}

type AccessResponse struct {
	CourseID  uuid.UUID  `json:"courseId"`
	HasAccess bool       `json:"hasAccess"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func FromAccessView(v *queries.AccessView) (*AccessResponse, error) {
	var res AccessResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, errs.Wrap(err, "map course access")
	}
	return &res, nil
}
