package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/mockdrill/mockdrill-backend/internal/mailer"
	"github.com/mockdrill/mockdrill-backend/internal/model"
	"github.com/mockdrill/mockdrill-backend/internal/payment"
	"github.com/mockdrill/mockdrill-backend/internal/repository"
	"github.com/mockdrill/mockdrill-backend/internal/response"
)

// Domain errors.
var (
	ErrItemIsFree        = errors.New("item is free, enroll directly")
	ErrAlreadyEnrolled   = errors.New("student already has access to this item")
	ErrOrderNotPending   = errors.New("order is not pending")
	ErrNotOrderOwner     = errors.New("order belongs to another student")
	ErrSignatureMismatch = errors.New("payment signature does not match")
	ErrPaymentRequired   = errors.New("paid item requires a completed purchase")
)

// CheckoutSession is what the client needs to open the payment widget.
type CheckoutSession struct {
	OrderID         uuid.UUID `json:"order_id"`
	ProviderOrderID string    `json:"provider_order_id"`
	AmountCents     int64     `json:"amount_cents"`
	Currency        string    `json:"currency"`
	KeyID           string    `json:"key_id"`
}

// OrderService handles checkout, payment verification, and enrollments.
type OrderService struct {
	orderRepo      *repository.OrderRepository
	enrollmentRepo *repository.EnrollmentRepository
	testRepo       *repository.TestRepository
	courseRepo     *repository.CourseRepository
	studentRepo    *repository.StudentRepository
	gateway        *payment.Client
	mail           *mailer.Mailer
	keyID          string
	log            zerolog.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo *repository.OrderRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	testRepo *repository.TestRepository,
	courseRepo *repository.CourseRepository,
	studentRepo *repository.StudentRepository,
	gateway *payment.Client,
	mail *mailer.Mailer,
	keyID string,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		enrollmentRepo: enrollmentRepo,
		testRepo:       testRepo,
		courseRepo:     courseRepo,
		studentRepo:    studentRepo,
		gateway:        gateway,
		mail:           mail,
		keyID:          keyID,
		log:            log.With().Str("component", "order_service").Logger(),
	}
}

// itemPrice resolves an item and returns its price in rupees. Free items
// return ErrItemIsFree.
func (s *OrderService) itemPrice(ctx context.Context, itemType model.ItemType, itemID uuid.UUID) (float64, error) {
	switch itemType {
	case model.ItemTypeTest:
		test, err := s.testRepo.GetByID(ctx, itemID)
		if err != nil {
			return 0, err
		}
		if test.Type == model.TestTypeFree {
			return 0, ErrItemIsFree
		}
		return test.Price, nil
	case model.ItemTypeCourse:
		course, err := s.courseRepo.GetByID(ctx, itemID)
		if err != nil {
			return 0, err
		}
		if course.Type == model.TestTypeFree {
			return 0, ErrItemIsFree
		}
		return course.Price, nil
	default:
		return 0, fmt.Errorf("unknown item type %q", itemType)
	}
}

// CreateOrder starts a checkout for a paid item. A pending order for the
// same student and item is reused so checkout retries never stack
// duplicate gateway orders.
func (s *OrderService) CreateOrder(ctx context.Context, studentID int, req *model.CreateOrderRequest) (*CheckoutSession, error) {
	itemType := model.ItemType(req.ItemType)

	enrolled, err := s.enrollmentRepo.Exists(ctx, studentID, itemType, req.ItemID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, ErrAlreadyEnrolled
	}

	price, err := s.itemPrice(ctx, itemType, req.ItemID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.orderRepo.GetPendingByItem(ctx, studentID, itemType, req.ItemID); err == nil {
		return &CheckoutSession{
			OrderID:         existing.ID,
			ProviderOrderID: existing.ProviderOrderID,
			AmountCents:     existing.AmountCents,
			Currency:        existing.Currency,
			KeyID:           s.keyID,
		}, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	amountCents := int64(math.Round(price * 100))
	order := &model.Order{
		StudentID:   studentID,
		ItemType:    itemType,
		ItemID:      req.ItemID,
		AmountCents: amountCents,
		Currency:    "INR",
		Status:      model.OrderStatusPending,
	}

	receipt := uuid.New().String()
	gwOrder, err := s.gateway.CreateOrder(ctx, amountCents, order.Currency, receipt)
	if err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}
	order.ProviderOrderID = gwOrder.ID

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("order_id", order.ID.String()).
		Str("provider_order_id", order.ProviderOrderID).
		Int64("amount_cents", amountCents).
		Msg("Order created")

	return &CheckoutSession{
		OrderID:         order.ID,
		ProviderOrderID: order.ProviderOrderID,
		AmountCents:     order.AmountCents,
		Currency:        order.Currency,
		KeyID:           s.keyID,
	}, nil
}

// VerifyPayment checks the checkout signature. A match completes the
// order and writes the enrollment in one transaction; a mismatch marks
// the order failed and grants nothing.
func (s *OrderService) VerifyPayment(ctx context.Context, studentID int, req *model.VerifyPaymentRequest) (*model.Enrollment, error) {
	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.StudentID != studentID {
		return nil, ErrNotOrderOwner
	}
	if order.Status != model.OrderStatusPending {
		return nil, ErrOrderNotPending
	}

	if !s.gateway.VerifySignature(req.ProviderOrderID, req.ProviderPaymentID, req.Signature) {
		if err := s.orderRepo.UpdateStatus(ctx, order.ID, model.OrderStatusFailed); err != nil {
			s.log.Error().Err(err).Str("order_id", order.ID.String()).Msg("Failed to mark order failed")
		}
		s.log.Warn().Str("order_id", order.ID.String()).Msg("Payment signature mismatch")
		return nil, ErrSignatureMismatch
	}

	enrollment, err := s.orderRepo.CompleteAndEnroll(ctx, order, req.ProviderPaymentID)
	if err != nil {
		return nil, fmt.Errorf("complete order: %w", err)
	}

	s.log.Info().Str("order_id", order.ID.String()).Msg("Payment verified, enrollment granted")

	if student, err := s.studentRepo.GetByID(ctx, order.StudentID); err == nil {
		s.mail.Send(mailer.Message{
			To:       student.Email,
			Template: "purchase-confirmed",
			Data: map[string]any{
				"item_type":    order.ItemType,
				"item_id":      order.ItemID.String(),
				"amount_cents": order.AmountCents,
			},
		})
	}

	return enrollment, nil
}

// CancelOrder marks an abandoned checkout as cancelled.
func (s *OrderService) CancelOrder(ctx context.Context, studentID int, orderID uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.StudentID != studentID {
		return ErrNotOrderOwner
	}
	if order.Status != model.OrderStatusPending {
		return ErrOrderNotPending
	}
	return s.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusCancelled)
}

// EnrollFree grants access to a free item without an order.
func (s *OrderService) EnrollFree(ctx context.Context, studentID int, itemType model.ItemType, itemID uuid.UUID) (*model.Enrollment, error) {
	_, err := s.itemPrice(ctx, itemType, itemID)
	if err == nil {
		return nil, ErrPaymentRequired
	}
	if !errors.Is(err, ErrItemIsFree) {
		return nil, err
	}

	enrolled, err := s.enrollmentRepo.Exists(ctx, studentID, itemType, itemID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, ErrAlreadyEnrolled
	}

	enrollment := &model.Enrollment{
		StudentID: studentID,
		ItemType:  itemType,
		ItemID:    itemID,
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// HasAccess reports whether a student may consume an item: free items are
// open to everyone, paid items need an enrollment.
func (s *OrderService) HasAccess(ctx context.Context, studentID int, itemType model.ItemType, itemID uuid.UUID) (bool, error) {
	_, err := s.itemPrice(ctx, itemType, itemID)
	if errors.Is(err, ErrItemIsFree) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return s.enrollmentRepo.Exists(ctx, studentID, itemType, itemID)
}

// ListEnrollments retrieves a student's enrollments.
func (s *OrderService) ListEnrollments(ctx context.Context, studentID int) ([]model.Enrollment, error) {
	enrollments, err := s.enrollmentRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if enrollments == nil {
		enrollments = []model.Enrollment{}
	}
	return enrollments, nil
}

// ListOrders retrieves a student's orders with pagination.
func (s *OrderService) ListOrders(ctx context.Context, studentID, page, perPage int) ([]model.Order, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)

	orders, total, err := s.orderRepo.ListByStudentPaginated(ctx, studentID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, paginate(page, perPage, total), nil
}

// ListAllOrders returns every order across students for admin reporting.
func (s *OrderService) ListAllOrders(ctx context.Context, page, perPage int) ([]model.Order, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)

	orders, total, err := s.orderRepo.ListPaginated(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, paginate(page, perPage, total), nil
}
