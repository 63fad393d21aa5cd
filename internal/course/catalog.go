package course

// DefaultCatalog is seeded into an empty courses table.
func DefaultCatalog() []Course {
	return []Course{
		{
			Name:             "Breathing Basics",
			Description:      "Learn the foundations of mindful breathing",
			Level:            LevelBeginner,
			ZenCoinReward:    30,
			DurationMinutes:  10,
			BreathingPattern: "just-breathe",
			Prerequisites:    []string{},
			IsActive:         true,
		},
		{
			Name:             "Box Breathing Mastery",
			Description:      "Steady your nerves with the four-count box",
			Level:            LevelIntermediate,
			ZenCoinReward:    50,
			DurationMinutes:  15,
			BreathingPattern: "calm-before-event",
			Prerequisites:    []string{"breathing-basics"},
			IsActive:         true,
		},
		{
			Name:             "Focus Flow",
			Description:      "Sharpen concentration with extended exhales",
			Level:            LevelIntermediate,
			ZenCoinReward:    50,
			DurationMinutes:  15,
			BreathingPattern: "sharpen-focus",
			Prerequisites:    []string{"breathing-basics"},
			IsActive:         true,
		},
		{
			Name:             "Deep Relaxation",
			Description:      "Release tension with 4-7-8 breathing",
			Level:            LevelAdvanced,
			ZenCoinReward:    75,
			DurationMinutes:  20,
			BreathingPattern: "soothe-mind",
			Prerequisites:    []string{"box-breathing-mastery"},
			IsActive:         true,
		},
		{
			Name:             "Sleep Sanctuary",
			Description:      "Wind down body and mind for restful sleep",
			Level:            LevelAdvanced,
			ZenCoinReward:    75,
			DurationMinutes:  20,
			BreathingPattern: "drift-to-sleep",
			Prerequisites:    []string{"breathing-basics", "deep-relaxation"},
			IsActive:         true,
		},
		{
			Name:             "Zen Master Path",
			Description:      "Bring every technique together in one practice",
			Level:            LevelMaster,
			ZenCoinReward:    150,
			DurationMinutes:  30,
			BreathingPattern: "just-breathe",
			Prerequisites:    []string{"deep-relaxation", "focus-flow"},
			IsActive:         true,
		},
	}
}
