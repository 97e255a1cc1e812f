package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/albaz/internal/store"
)

// CommerceHandler serves the cart, coupon and checkout routes.
type CommerceHandler struct {
	store *store.Store
}

// NewCommerceHandler constructs CommerceHandler.
func NewCommerceHandler(s *store.Store) *CommerceHandler {
	return &CommerceHandler{store: s}
}

// GetCart returns the cart contents alongside the payable total.
func (h *CommerceHandler) GetCart(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"items": h.store.Cart(),
			"total": h.store.CheckoutTotal(),
		},
	})
}

type cartRequest struct {
	CourseID string `json:"course_id"`
}

// AddToCart queues a course for purchase.
func (h *CommerceHandler) AddToCart(c *fiber.Ctx) error {
	var payload cartRequest
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.store.AddToCart(payload.CourseID); err != nil {
		return storeError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": h.store.Cart()})
}

// RemoveFromCart drops a cart item.
func (h *CommerceHandler) RemoveFromCart(c *fiber.Ctx) error {
	h.store.RemoveFromCart(c.Params("courseId"))
	return c.JSON(fiber.Map{"success": true, "data": h.store.Cart()})
}

// ClearCart empties the cart.
func (h *CommerceHandler) ClearCart(c *fiber.Ctx) error {
	h.store.ClearCart()
	return c.SendStatus(fiber.StatusNoContent)
}

type couponRequest struct {
	Code string `json:"code"`
}

// ApplyCoupon validates a code against the cart and holds the discount.
func (h *CommerceHandler) ApplyCoupon(c *fiber.Ctx) error {
	var payload couponRequest
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	result := h.store.ApplyCoupon(payload.Code)
	return c.JSON(fiber.Map{"success": result.Valid, "data": result})
}

// RemoveCoupon clears the held discount.
func (h *CommerceHandler) RemoveCoupon(c *fiber.Ctx) error {
	h.store.RemoveCoupon()
	return c.JSON(fiber.Map{"success": true})
}

// GetCheckout returns the current checkout state.
func (h *CommerceHandler) GetCheckout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.store.Checkout()})
}

// ResetCheckout abandons the flow and returns to review.
func (h *CommerceHandler) ResetCheckout(c *fiber.Ctx) error {
	h.store.ResetCheckout()
	return c.JSON(fiber.Map{"success": true, "data": h.store.Checkout()})
}

// SubscriptionHandoff returns the external chat URL for manual payment.
func (h *CommerceHandler) SubscriptionHandoff(c *fiber.Ctx) error {
	link, err := h.store.SubscriptionHandoff()
	if err != nil {
		return storeError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"url": link}})
}

type visaRequest struct {
	CardNumber string `json:"card_number"`
}

// PayVisa starts card processing.
func (h *CommerceHandler) PayVisa(c *fiber.Ctx) error {
	var payload visaRequest
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.store.ProceedVisa(payload.CardNumber); err != nil {
		return storeError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": h.store.Checkout()})
}

// BeginVodafone opens the manual wallet-transfer flow.
func (h *CommerceHandler) BeginVodafone(c *fiber.Ctx) error {
	if err := h.store.BeginVodafone(); err != nil {
		return storeError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": h.store.Checkout()})
}

type vodafoneContactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SubmitVodafoneContact records the payer's contact info and sends the
// transfer instructions.
func (h *CommerceHandler) SubmitVodafoneContact(c *fiber.Ctx) error {
	var payload vodafoneContactRequest
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.store.SubmitVodafoneContact(payload.Name, payload.Email, payload.Phone); err != nil {
		return storeError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": h.store.Checkout()})
}

type vodafoneConfirmRequest struct {
	WalletNumber string `json:"wallet_number"`
}

// ConfirmVodafoneTransfer confirms the transfer was sent.
func (h *CommerceHandler) ConfirmVodafoneTransfer(c *fiber.Ctx) error {
	var payload vodafoneConfirmRequest
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.store.ConfirmVodafoneTransfer(payload.WalletNumber); err != nil {
		return storeError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": h.store.Checkout()})
}

// PayFawry issues a payment reference code.
func (h *CommerceHandler) PayFawry(c *fiber.Ctx) error {
	code, err := h.store.ProceedFawry()
	if err != nil {
		return storeError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"fawry_code": code}})
}

// ConfirmFawryPaid finalizes a pending reference-code payment.
func (h *CommerceHandler) ConfirmFawryPaid(c *fiber.Ctx) error {
	if err := h.store.ConfirmFawryPaid(); err != nil {
		return storeError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": h.store.Checkout()})
}
