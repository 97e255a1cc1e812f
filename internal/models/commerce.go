package models

import "time"

// CartItem is a course queued for purchase. Price is snapshotted from the
// course's effective price when the item is added.
type CartItem struct {
	CourseID  string  `json:"course_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Thumbnail string  `json:"thumbnail"`
}

// Coupon is an in-memory discount code. Coupons are not persisted; a restart
// resets them to the seed set.
type Coupon struct {
	ID               string    `json:"id"`
	Code             string    `json:"code"`
	DiscountPercent  float64   `json:"discount_percent"`
	ExpiryDate       time.Time `json:"expiry_date"`
	SpecificCourseID string    `json:"specific_course_id,omitempty"`
}

// PaymentMethod enumerates the supported checkout methods.
type PaymentMethod string

const (
	MethodVisa         PaymentMethod = "visa"
	MethodVodafone     PaymentMethod = "vodafone"
	MethodFawry        PaymentMethod = "fawry"
	MethodSubscription PaymentMethod = "subscription"
)

// PaymentMethodConfig is an admin-managed toggle for a checkout method.
type PaymentMethodConfig struct {
	ID            string        `json:"id"`
	Type          PaymentMethod `json:"type"`
	NameAr        string        `json:"name_ar"`
	NameEn        string        `json:"name_en"`
	IsEnabled     bool          `json:"is_enabled"`
	DescriptionAr string        `json:"description_ar,omitempty"`
	DescriptionEn string        `json:"description_en,omitempty"`
}
