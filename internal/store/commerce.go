package store

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/albaz/internal/models"
)

// CheckoutStep enumerates the checkout machine states.
type CheckoutStep string

const (
	StepReview         CheckoutStep = "review"
	StepVFContact      CheckoutStep = "vf_contact"
	StepVFInstructions CheckoutStep = "vf_instructions"
	StepProcessing     CheckoutStep = "processing"
	StepFawryPending   CheckoutStep = "fawry_pending"
	StepSuccess        CheckoutStep = "success"
)

// Checkout is the ephemeral checkout state. It is never persisted; abandoning
// the flow resets it to review.
type Checkout struct {
	Step           CheckoutStep         `json:"step"`
	Method         models.PaymentMethod `json:"method,omitempty"`
	FawryCode      string               `json:"fawry_code,omitempty"`
	AppliedCoupon  string               `json:"applied_coupon,omitempty"`
	DiscountAmount float64              `json:"discount_amount"`
}

// CouponResult is the discriminated outcome of coupon validation.
type CouponResult struct {
	Valid          bool    `json:"valid"`
	DiscountAmount float64 `json:"discount_amount"`
	Message        string  `json:"message,omitempty"`
}

// --- cart ---

// AddToCart snapshots the course's effective price into the cart. Adding a
// course that is already present is a no-op.
func (s *Store) AddToCart(courseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	course := s.findCourse(courseID)
	if course == nil {
		return ErrNotFound
	}

	for _, item := range s.cart {
		if item.CourseID == courseID {
			return nil
		}
	}

	s.cart = append(s.cart, models.CartItem{
		CourseID:  course.ID,
		Title:     course.Title,
		Price:     course.EffectivePrice(),
		Thumbnail: course.Thumbnail,
	})
	return nil
}

// RemoveFromCart drops an item by course id.
func (s *Store) RemoveFromCart(courseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.cart {
		if item.CourseID == courseID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return
		}
	}
}

// ClearCart empties the cart.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
}

// Cart returns a copy of the cart contents.
func (s *Store) Cart() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

func cartSubtotal(items []models.CartItem) float64 {
	sum := 0.0
	for _, item := range items {
		sum += item.Price
	}
	return sum
}

// CheckoutTotal returns subtotal minus the applied discount.
func (s *Store) CheckoutTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartSubtotal(s.cart) - s.checkout.DiscountAmount
}

// --- coupons ---

// AddCoupon registers a discount code. Codes are stored uppercased and must
// be unique case-insensitively.
func (s *Store) AddCoupon(coupon models.Coupon) error {
	if coupon.DiscountPercent < 1 || coupon.DiscountPercent > 100 {
		return fmt.Errorf("%w: discount percent must be between 1 and 100", ErrInvalidInput)
	}

	code := strings.ToUpper(strings.TrimSpace(coupon.Code))
	if code == "" {
		return fmt.Errorf("%w: coupon code is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.coupons {
		if c.Code == code {
			return fmt.Errorf("%w: coupon code already exists", ErrInvalidInput)
		}
	}

	coupon.Code = code
	if coupon.ID == "" {
		coupon.ID = uuid.NewString()
	}
	s.coupons = append(s.coupons, coupon)
	return nil
}

// DeleteCoupon removes a coupon by id.
func (s *Store) DeleteCoupon(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.coupons {
		if c.ID == id {
			s.coupons = append(s.coupons[:i], s.coupons[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ValidateCoupon checks a code against the given cart items. The lookup is
// exact against the stored uppercased code. Coupons are never consumed; the
// same code validates any number of times.
func (s *Store) ValidateCoupon(code string, items []models.CartItem) CouponResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateCouponLocked(code, items)
}

func (s *Store) validateCouponLocked(code string, items []models.CartItem) CouponResult {
	var coupon *models.Coupon
	for i := range s.coupons {
		if s.coupons[i].Code == code {
			coupon = &s.coupons[i]
			break
		}
	}
	if coupon == nil {
		return CouponResult{}
	}

	if time.Now().After(coupon.ExpiryDate) {
		return CouponResult{Message: "Expired"}
	}

	discount := 0.0
	for _, item := range items {
		if coupon.SpecificCourseID == "" || coupon.SpecificCourseID == item.CourseID {
			discount += item.Price * coupon.DiscountPercent / 100
		}
	}

	if discount == 0 {
		return CouponResult{Message: "Not applicable"}
	}

	return CouponResult{Valid: true, DiscountAmount: discount}
}

// ApplyCoupon validates the code against the current cart and, when valid,
// holds the discount until removal or checkout completion. Input is
// uppercased before lookup.
func (s *Store) ApplyCoupon(code string) CouponResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := strings.ToUpper(strings.TrimSpace(code))
	result := s.validateCouponLocked(normalized, s.cart)
	if result.Valid {
		s.checkout.AppliedCoupon = normalized
		s.checkout.DiscountAmount = result.DiscountAmount
	} else {
		s.checkout.AppliedCoupon = ""
		s.checkout.DiscountAmount = 0
	}
	return result
}

// RemoveCoupon clears the held discount.
func (s *Store) RemoveCoupon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkout.AppliedCoupon = ""
	s.checkout.DiscountAmount = 0
}

// --- checkout state machine ---

// Checkout returns the current checkout state.
func (s *Store) Checkout() Checkout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout
}

// ResetCheckout abandons the flow and returns to review. Cart and coupon are
// kept.
func (s *Store) ResetCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkout.Step = StepReview
	s.checkout.Method = ""
	s.checkout.FawryCode = ""
}

func (s *Store) beginPaymentLocked(method models.PaymentMethod) error {
	if s.session == nil {
		return ErrNoSession
	}
	if !s.settings.MethodEnabled(method) {
		return ErrMethodDisabled
	}
	if s.checkout.Step != StepReview {
		return ErrBadState
	}
	return nil
}

// SubscriptionHandoff builds the external chat URL with a prefilled message
// listing the cart. No checkout state changes; the cart is untouched.
func (s *Store) SubscriptionHandoff() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return "", ErrNoSession
	}
	if !s.settings.MethodEnabled(models.MethodSubscription) {
		return "", ErrMethodDisabled
	}

	details := make([]string, 0, len(s.cart))
	for _, item := range s.cart {
		line := fmt.Sprintf("%q", item.Title)
		if course := s.findCourse(item.CourseID); course != nil {
			line = fmt.Sprintf("%q by %q", item.Title, course.Instructor)
		}
		details = append(details, line)
	}

	message := "Hello, I want to subscribe to course: " + strings.Join(details, " + ")
	return "https://wa.me/" + s.whatsAppNumber + "?text=" + url.QueryEscape(message), nil
}

// ProceedVisa validates the card number (16+ digits) and moves to processing;
// the payment finalizes after the simulated gateway delay.
func (s *Store) ProceedVisa(cardNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.beginPaymentLocked(models.MethodVisa); err != nil {
		return err
	}

	digits := strings.ReplaceAll(cardNumber, " ", "")
	if len(digits) < 16 || !isNumeric(digits) {
		return fmt.Errorf("%w: invalid card number", ErrInvalidInput)
	}

	s.checkout.Method = models.MethodVisa
	s.checkout.Step = StepProcessing
	s.scheduleFinalize()
	return nil
}

// BeginVodafone opens the manual-transfer flow by collecting contact info.
func (s *Store) BeginVodafone() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.beginPaymentLocked(models.MethodVodafone); err != nil {
		return err
	}

	s.checkout.Method = models.MethodVodafone
	s.checkout.Step = StepVFContact
	return nil
}

// SubmitVodafoneContact records the payer's contact info, sends the transfer
// instructions notice and advances to the instructions screen.
func (s *Store) SubmitVodafoneContact(name, email, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return ErrNoSession
	}
	if s.checkout.Step != StepVFContact {
		return ErrBadState
	}
	if name == "" || email == "" || phone == "" {
		return fmt.Errorf("%w: name, email and phone are required", ErrInvalidInput)
	}

	total := cartSubtotal(s.cart) - s.checkout.DiscountAmount
	s.mailer.Send(email,
		"Payment Instructions",
		fmt.Sprintf("Please transfer %.2f EGP to wallet %s to complete your enrollment.",
			total, s.settings.VodafoneWalletNumber))

	s.checkout.Step = StepVFInstructions
	return nil
}

// ConfirmVodafoneTransfer validates the payer's own wallet number (11+
// digits) and finalizes after the simulated delay.
func (s *Store) ConfirmVodafoneTransfer(walletNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return ErrNoSession
	}
	if s.checkout.Step != StepVFInstructions {
		return ErrBadState
	}
	if len(walletNumber) < 11 || !isNumeric(walletNumber) {
		return fmt.Errorf("%w: invalid wallet number", ErrInvalidInput)
	}

	s.checkout.Step = StepProcessing
	s.scheduleFinalize()
	return nil
}

// ProceedFawry generates a payment reference code and waits for the user's
// manual confirmation. There is no verified callback.
func (s *Store) ProceedFawry() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.beginPaymentLocked(models.MethodFawry); err != nil {
		return "", err
	}

	code, err := generateFawryCode()
	if err != nil {
		return "", err
	}

	s.checkout.Method = models.MethodFawry
	s.checkout.FawryCode = code
	s.checkout.Step = StepFawryPending
	return code, nil
}

// ConfirmFawryPaid is the "I have paid" action: it finalizes immediately.
func (s *Store) ConfirmFawryPaid() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return ErrNoSession
	}
	if s.checkout.Step != StepFawryPending {
		return ErrBadState
	}

	s.finalizeLocked()
	return nil
}

// scheduleFinalize completes the payment after the simulated processing
// delay. A zero delay finalizes inline. Mutex held by the caller.
func (s *Store) scheduleFinalize() {
	if s.checkoutDelay == 0 {
		s.finalizeLocked()
		return
	}

	s.mirrors.Add(1)
	go func() {
		defer s.mirrors.Done()
		time.Sleep(s.checkoutDelay)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.checkout.Step == StepProcessing {
			s.finalizeLocked()
		}
	}()
}

// finalizeLocked is the single point where commerce state becomes enrollment
// state: enroll every cart course, clear the cart and the held discount, and
// land on success. Enrollment is a set union, so replaying is harmless.
func (s *Store) finalizeLocked() {
	ids := make([]string, 0, len(s.cart))
	for _, item := range s.cart {
		ids = append(ids, item.CourseID)
	}

	if len(ids) > 0 {
		if err := s.enrollLocked(ids); err != nil {
			// Session vanished mid-checkout; drop the order.
			s.cart = nil
			s.checkout = Checkout{Step: StepReview}
			return
		}
	}

	s.cart = nil
	s.checkout.AppliedCoupon = ""
	s.checkout.DiscountAmount = 0
	s.checkout.FawryCode = ""
	s.checkout.Step = StepSuccess
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// generateFawryCode returns a random 9-digit payment reference.
func generateFawryCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", 900000000+n.Int64()), nil
}
