package store

import (
	"time"

	"github.com/example/albaz/internal/models"
	"github.com/example/albaz/internal/utils"
)

// Seed accounts created on first run, when both collections are empty.
const (
	SeedAdminEmail      = "admin@albaz.com"
	SeedAdminPassword   = "Admin99#"
	SeedStudentEmail    = "student@test.com"
	SeedStudentPassword = "123"
)

func floatPtr(v float64) *float64 { return &v }

func seedCourses() []models.Course {
	return []models.Course{
		{
			ID:            "1",
			Title:         "تعلم React من الصفر للاحتراف",
			Description:   "كورس شامل يغطي أساسيات React و Hooks و Context API وحتى بناء مشاريع حقيقية.",
			Price:         1500,
			DiscountPrice: floatPtr(1200),
			Instructor:    "أحمد علي",
			Thumbnail:     "https://picsum.photos/seed/react/800/450",
			Category:      "برمجة",
			Rating:        4.8,
			Reviews: []models.Review{
				{ID: "r1", UserID: "u2", UserName: "سارة أحمد", Rating: 5, Comment: "كورس ممتاز وشرح وافي جداً!", Date: "2024-02-15"},
				{ID: "r2", UserID: "u3", UserName: "محمد حسن", Rating: 4, Comment: "جيد جداً لكن يحتاج المزيد من الأمثلة العملية.", Date: "2024-02-10"},
			},
			Sections: []models.Section{
				{
					ID:    "s1",
					Title: "مقدمة في React",
					Lessons: []models.Lesson{
						{
							ID: "l1", Title: "ما هو React؟", Description: "نظرة عامة على المكتبة",
							Type: models.LessonVideo, Duration: "05:00", IsFree: true,
							Resources: []models.LessonResource{
								{ID: "r1", Title: "Introduction Video", URL: "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1", Type: models.ResourceVideo},
							},
						},
						{
							ID: "l2", Title: "إعداد بيئة العمل", Description: "تنصيب Node.js و VS Code",
							Type: models.LessonVideo, Duration: "10:00", Resources: []models.LessonResource{},
						},
					},
				},
				{
					ID:    "s2",
					Title: "Hooks الأساسية",
					Lessons: []models.Lesson{
						{ID: "l3", Title: "شرح useState", Type: models.LessonVideo, Duration: "15:00", Resources: []models.LessonResource{}},
						{ID: "l4", Title: "شرح useEffect", Type: models.LessonVideo, Duration: "12:00", Resources: []models.LessonResource{}},
						{ID: "l5", Title: "ملخص الـ Hooks", Type: models.LessonPDF, Resources: []models.LessonResource{}},
					},
				},
			},
		},
		{
			ID:          "2",
			Title:       "احتراف التصميم الجرافيكي",
			Description: "تعلم أساسيات التصميم باستخدام Photoshop و Illustrator وكيفية بناء هوية بصرية.",
			Price:       900,
			Instructor:  "سارة محمد",
			Thumbnail:   "https://picsum.photos/seed/design/800/450",
			Category:    "تصميم",
			Rating:      4.5,
			Reviews:     []models.Review{},
			Sections:    []models.Section{},
		},
		{
			ID:          "3",
			Title:       "أساسيات التسويق الرقمي",
			Description: "دليلك الشامل لدخول عالم التسويق الرقمي وإدارة الحملات الإعلانية.",
			Price:       1200,
			Instructor:  "محمود حسن",
			Thumbnail:   "https://picsum.photos/seed/marketing/800/450",
			Category:    "تسويق",
			Rating:      4.2,
			Reviews:     []models.Review{},
			Sections:    []models.Section{},
		},
		{
			ID:            "4",
			Title:         "مقدمة في بايثون",
			Description:   "ابدأ رحلتك في البرمجة مع لغة بايثون السهلة والقوية.",
			Price:         1100,
			DiscountPrice: floatPtr(900),
			Instructor:    "خالد عمر",
			Thumbnail:     "https://picsum.photos/seed/python/800/450",
			Category:      "برمجة",
			Rating:        4.7,
			Reviews:       []models.Review{},
			Sections:      []models.Section{},
		},
		{
			ID:          "5",
			Title:       "فن التصوير الفوتوغرافي",
			Description: "تعلم قواعد التكوين والإضاءة لالتقاط صور احترافية.",
			Price:       1300,
			Instructor:  "نور الهدى",
			Thumbnail:   "https://picsum.photos/seed/photo/800/450",
			Category:    "تصميم",
			Rating:      4.9,
			Reviews:     []models.Review{},
			Sections:    []models.Section{},
		},
	}
}

func seedUsers() []models.User {
	adminHash, _ := utils.HashPassword(SeedAdminPassword)
	studentHash, _ := utils.HashPassword(SeedStudentPassword)

	return []models.User{
		{
			ID:               "admin-001",
			Name:             "Albaz Admin",
			Email:            SeedAdminEmail,
			Phone:            "01000000000",
			PasswordHash:     adminHash,
			Role:             models.RoleAdmin,
			PurchasedCourses: []string{},
			CompletedLessons: map[string][]string{},
			JoinedDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			LastLogin:        time.Now(),
		},
		{
			ID:               "student-002",
			Name:             "Student Test",
			Email:            SeedStudentEmail,
			Phone:            "01112345678",
			PasswordHash:     studentHash,
			Role:             models.RoleStudent,
			PurchasedCourses: []string{"1"},
			CompletedLessons: map[string][]string{},
			JoinedDate:       time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
			LastLogin:        time.Date(2024, 5, 20, 18, 30, 0, 0, time.UTC),
		},
	}
}

func seedCoupons() []models.Coupon {
	return []models.Coupon{
		{
			ID:              "c1",
			Code:            "WELCOME10",
			DiscountPercent: 10,
			ExpiryDate:      time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
		},
	}
}

func defaultSettings() models.SiteSettings {
	return models.SiteSettings{
		VodafoneWalletNumber: "01034170098",
		SupportEmail:         "support@albaz.com",
		PaymentMethods: []models.PaymentMethodConfig{
			{ID: "1", Type: models.MethodSubscription, NameAr: "الاشتراك في الدفع", NameEn: "Subscription Payment", IsEnabled: true, DescriptionAr: "تواصل معنا واتمام الدفع عبر واتساب"},
			{ID: "2", Type: models.MethodVisa, NameAr: "بطاقة بنكية", NameEn: "Credit / Debit Card", IsEnabled: true},
			{ID: "3", Type: models.MethodVodafone, NameAr: "محفظة إلكترونية", NameEn: "Mobile Wallet", IsEnabled: true, DescriptionAr: "فودافون كاش، اتصالات، اورانج"},
			{ID: "4", Type: models.MethodFawry, NameAr: "فوري", NameEn: "Fawry Pay", IsEnabled: true, DescriptionAr: "الدفع في أقرب ماكينة فوري"},
		},
		SiteTheme:        models.ThemeDefault,
		BrandName:        "Albaz",
		PrimaryColor:     "#2563eb",
		SecondaryColor:   "#f59e0b",
		HeroImageURLs:    []string{"https://cdni.iconscout.com/illustration/premium/thumb/online-learning-4112674-3407969.png"},
		HeroTitleAr:      "تعلم مهارات المستقبل",
		HeroTitleEn:      "Learn Future Skills",
		HeroSubtitleAr:   "في مكان واحد",
		HeroSubtitleEn:   "In One Place",
		ShowStudentCount: true,
	}
}
