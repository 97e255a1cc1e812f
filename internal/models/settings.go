package models

import "time"

// SiteTheme selects the seasonal appearance of the storefront.
type SiteTheme string

const (
	ThemeDefault SiteTheme = "default"
	ThemeRamadan SiteTheme = "ramadan"
	ThemeEidFitr SiteTheme = "eid-fitr"
	ThemeEidAdha SiteTheme = "eid-adha"
	ThemeCustom  SiteTheme = "custom"
)

// SiteSettings is the process-wide configuration singleton. Only admins may
// mutate it; changes apply immediately to all readers.
type SiteSettings struct {
	VodafoneWalletNumber string                `json:"vodafone_wallet_number"`
	SupportEmail         string                `json:"support_email"`
	PaymentMethods       []PaymentMethodConfig `json:"payment_methods"`
	SiteTheme            SiteTheme             `json:"site_theme"`
	BrandName            string                `json:"brand_name"`
	PrimaryColor         string                `json:"primary_color"`
	SecondaryColor       string                `json:"secondary_color"`
	HeroImageURLs        []string              `json:"hero_image_urls"`
	HeroTitleAr          string                `json:"hero_title_ar"`
	HeroTitleEn          string                `json:"hero_title_en"`
	HeroSubtitleAr       string                `json:"hero_subtitle_ar"`
	HeroSubtitleEn       string                `json:"hero_subtitle_en"`
	ShowStudentCount     bool                  `json:"show_student_count"`
}

// MethodEnabled reports whether a payment method is toggled on.
func (s *SiteSettings) MethodEnabled(method PaymentMethod) bool {
	for _, m := range s.PaymentMethods {
		if m.Type == method {
			return m.IsEnabled
		}
	}
	return false
}

// NotificationType classifies a broadcast notice.
type NotificationType string

const (
	NoticeInfo    NotificationType = "info"
	NoticeAlert   NotificationType = "alert"
	NoticeSuccess NotificationType = "success"
)

// SystemNotification is an admin broadcast visible to every session in the
// running process. The list lives in memory only.
type SystemNotification struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
	Date    time.Time        `json:"date"`
}
