package models

// LessonType identifies the primary content of a lesson.
type LessonType string

const (
	LessonVideo LessonType = "video"
	LessonPDF   LessonType = "pdf"
	LessonQuiz  LessonType = "quiz"
)

// ResourceType identifies how a lesson resource is delivered.
type ResourceType string

const (
	ResourceVideo  ResourceType = "video"
	ResourceFile   ResourceType = "file"
	ResourceUpload ResourceType = "upload"
)

// LessonResource is an attachment belonging to a lesson.
type LessonResource struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	URL   string       `json:"url"`
	Type  ResourceType `json:"type"`
}

// Lesson is a single unit of course content.
type Lesson struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Type        LessonType       `json:"type"`
	Duration    string           `json:"duration,omitempty"`
	IsFree      bool             `json:"is_free,omitempty"`
	Resources   []LessonResource `json:"resources"`
}

// Section groups an ordered list of lessons.
type Section struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

// Review is a single student rating attached to a course.
type Review struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Date     string `json:"date"`
}

// Course is the catalog record persisted in the "courses" collection.
// Rating and StudentsCount are derived values: they are recomputed from
// reviews and enrollment state, never assigned directly.
type Course struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	DiscountPrice *float64  `json:"discount_price,omitempty"`
	Instructor    string    `json:"instructor"`
	Thumbnail     string    `json:"thumbnail"`
	Category      string    `json:"category"`
	Rating        float64   `json:"rating"`
	StudentsCount int       `json:"students_count"`
	Reviews       []Review  `json:"reviews"`
	Sections      []Section `json:"sections"`
}

// EffectivePrice returns the discount price when present, the list price
// otherwise. Cart items snapshot this value at add time.
func (c *Course) EffectivePrice() float64 {
	if c.DiscountPrice != nil {
		return *c.DiscountPrice
	}
	return c.Price
}

// TotalLessons counts lessons across all sections.
func (c *Course) TotalLessons() int {
	total := 0
	for _, s := range c.Sections {
		total += len(s.Lessons)
	}
	return total
}
