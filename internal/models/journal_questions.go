package models

type JournalQuestion struct {
	ID          string `json:"id"`
	Question    string `json:"question"`
	Placeholder string `json:"placeholder"`
}

// JournalQuestions are the fixed daily prompts, in display order.
// Each ID matches the JSON name of a JournalFields answer.
var JournalQuestions = []JournalQuestion{
	{
		ID:          "accomplishment",
		Question:    "What's one thing I accomplished today that I'm genuinely proud of?",
		Placeholder: "Share an achievement, no matter how small...",
	},
	{
		ID:          "learning",
		Question:    "What did I learn today, about myself, others, or the task I worked on?",
		Placeholder: "Reflect on a new insight or lesson...",
	},
	{
		ID:          "hardest_moment",
		Question:    "What was the hardest moment of today, and how did I handle it?",
		Placeholder: "Describe a challenge and your response...",
	},
	{
		ID:          "focus_time",
		Question:    "When did I feel most focused or in flow? What was I doing at that time?",
		Placeholder: "What activity engaged you completely?",
	},
	{
		ID:          "avoidance",
		Question:    "What did I avoid today, and why do I think I avoided it?",
		Placeholder: "Be honest about procrastination or resistance...",
	},
	{
		ID:          "decision_regret",
		Question:    "What's one decision or habit from today I wish I handled differently?",
		Placeholder: "Reflect on a potential improvement...",
	},
	{
		ID:          "energy_sources",
		Question:    "What gave me energy today? What drained it?",
		Placeholder: "Identify your energizers and energy vampires...",
	},
	{
		ID:          "time_intentionality",
		Question:    "Was I intentional with how I spent my time, or did I drift?",
		Placeholder: "Evaluate your time management honestly...",
	},
	{
		ID:          "goals_reflection",
		Question:    "What did today teach me about my long-term goals or values?",
		Placeholder: "Connect today with your bigger picture...",
	},
	{
		ID:          "tomorrow_action",
		Question:    "What's one small, specific thing I want to do differently tomorrow?",
		Placeholder: "Commit to one actionable change...",
	},
}
