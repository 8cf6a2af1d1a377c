package climate

// ImpactPoint is one reason the stories matter.
type ImpactPoint struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Quote is a testimonial shown in the carousel.
type Quote struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Role   string `json:"role"`
}

var impactPoints = []ImpactPoint{
	{"Combat Climate Fatigue", "By making the issue personal and tangible, we help overcome the emotional exhaustion many feel about climate change.", "heart"},
	{"Empower Educators", "Provide journalists and teachers with new tools to explain complex science in relatable, engaging ways.", "users"},
	{"Bridge the Gap", "Connect scientific data to public empathy, transforming abstract statistics into actionable understanding.", "lightbulb"},
	{"Inspire Action", "When people see their personal stake in climate outcomes, they're more likely to take meaningful action.", "share-2"},
}

var testimonials = []Quote{
	{"Finally, climate data that feels real. Seeing how my hometown will change made me actually care about reducing my footprint.", "Priya M.", "Teacher, Mumbai"},
	{"We used EmpathyBridge in our environmental science class. Students were more engaged than with any traditional lecture.", "Dr. James Chen", "Professor, UC Berkeley"},
	{"As a journalist, this tool helps me tell climate stories that resonate with local communities.", "Sarah Johnson", "Environmental Reporter"},
}

func ImpactPoints() []ImpactPoint {
	return append([]ImpactPoint(nil), impactPoints...)
}

// TestimonialCount is the carousel length.
func TestimonialCount() int { return len(testimonials) }

// Wrap maps any integer onto a carousel index.
func Wrap(i int) int {
	n := len(testimonials)
	return ((i % n) + n) % n
}

func Next(i int) int { return Wrap(i + 1) }

func Prev(i int) int { return Wrap(i - 1) }

// Testimonial returns the quote at i after wrapping.
func Testimonial(i int) Quote {
	return testimonials[Wrap(i)]
}
