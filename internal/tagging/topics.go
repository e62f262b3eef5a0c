package tagging

import "strings"

// topicRules is evaluated in declared order; the order is the tie-break.
var topicRules = []Rule[string]{
	{
		Match: words("ai", "artificial intelligence", "machine learning", "automation",
			"software", "programming", "coding", "developer", "technology", "tech",
			"algorithm", "api", "cloud", "cybersecurity", "robotics", "blockchain"),
		Result: "Technology",
	},
	{
		Match: words("business", "startup", "startups", "entrepreneur", "marketing",
			"finance", "investment", "investing", "revenue", "sales", "strategy",
			"economy", "management", "leadership"),
		Result: "Business",
	},
	{
		Match: words("health", "wellness", "fitness", "nutrition", "meditation",
			"mental health", "mindfulness", "exercise", "workout", "sleep", "diet",
			"yoga", "therapy"),
		Result: "Wellness",
	},
	{
		Match: words("learn", "learning", "course", "courses", "tutorial", "education",
			"lesson", "lessons", "guide", "how to", "university", "study", "training"),
		Result: "Learning",
	},
	{
		Match: words("science", "scientific", "research", "physics", "biology",
			"chemistry", "climate", "astronomy", "space", "experiment", "discovery",
			"neuroscience"),
		Result: "Science",
	},
	{
		Match: words("design", "ui", "ux", "typography", "figma", "illustration",
			"branding", "creative", "layout", "prototype", "aesthetic"),
		Result: "Design",
	},
	{
		Match: words("productivity", "workflow", "habit", "habits", "focus",
			"time management", "efficiency", "organize", "planning", "notion",
			"todo", "routine"),
		Result: "Productivity",
	},
	{
		Match: words("news", "breaking", "headline", "headlines", "announcement",
			"politics", "election", "journalism", "press release"),
		Result: "News",
	},
}

// ClassifyTopics returns up to maxResults category labels whose keywords
// appear in text, in table order.
func ClassifyTopics(text string, maxResults int) []string {
	topics := AllMatches(topicRules, strings.ToLower(text), maxResults)
	if topics == nil {
		return []string{}
	}
	return topics
}
