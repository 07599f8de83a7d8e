package errs

// Sentinel errors shared by the checkout pipeline layers.
// Use errors.Is against these; wrap with Mark to keep the cause.
var (
	// Pricing
	ErrInvalidDiscountCode = New("invalid discount code")
	ErrEmptyCart           = New("cart is empty")
	ErrAmountMismatch      = New("amount mismatch")
	ErrZeroAmountCheckout  = New("discount covers the whole order")

	// Catalog and cart
	ErrCourseNotFound      = New("course not found")
	ErrCourseAlreadyInCart = New("course already in cart")
	ErrAlreadyEnrolled     = New("already enrolled in course")
	ErrCartItemNotFound    = New("cart item not found")

	// Gateway
	ErrGatewayUnavailable     = New("payment gateway unavailable")
	ErrPaymentCancelledByUser = New("payment cancelled by user")
	ErrPaymentFailedAtGateway = New("payment failed at gateway")

	// Verification
	ErrSignatureMismatch  = New("signature mismatch")
	ErrOrderNotFound      = New("order not found")
	ErrOrderNotVerifiable = New("order is not in a verifiable state")
	ErrForbidden          = New("order does not belong to session user")
	ErrUnauthenticated    = New("session user required")

	// Provisioning
	ErrEnrollmentPartialFailure = New("enrollment partially failed")
	ErrOrderNotProvisionable    = New("order is not awaiting provisioning")

	// Idempotency
	ErrIdempotencyKeyRequired = New("idempotency key required")
	ErrIdempotencyInProgress  = New("idempotency in progress")
	ErrIdempotencyCheckFailed = New("idempotency check failed")
	ErrDuplicateCheckout      = New("idempotency key reused with different request")

	// Validation
	ErrDomainValidation = New("domain validation error")

	// Operation
	ErrPersistenceFailure = New("persistence failure")
)
