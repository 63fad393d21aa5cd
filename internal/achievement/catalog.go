package achievement

// DefaultCatalog is seeded into an empty achievements table.
func DefaultCatalog() []Achievement {
	return []Achievement{
		{
			Name:          "First Steps",
			Description:   "Complete your first breathing session",
			Icon:          "🌱",
			ZenCoinReward: 10,
			Requirement:   DailyPractice{Sessions: 1},
		},
		{
			Name:          "Dedicated Breather",
			Description:   "Complete 10 breathing sessions",
			Icon:          "🌿",
			ZenCoinReward: 50,
			Requirement:   DailyPractice{Sessions: 10},
		},
		{
			Name:          "Breath Master",
			Description:   "Complete 100 breathing sessions",
			Icon:          "🌳",
			ZenCoinReward: 200,
			Requirement:   DailyPractice{Sessions: 100},
		},
		{
			Name:          "Three Day Flow",
			Description:   "Practice 3 days in a row",
			Icon:          "🔥",
			ZenCoinReward: 25,
			Requirement:   ConsecutiveDays{Days: 3},
		},
		{
			Name:          "Weekly Warrior",
			Description:   "Practice 7 days in a row",
			Icon:          "⚡",
			ZenCoinReward: 75,
			Requirement:   ConsecutiveDays{Days: 7},
		},
		{
			Name:          "Course Explorer",
			Description:   "Complete your first breathing course",
			Icon:          "📚",
			ZenCoinReward: 30,
			Requirement:   CourseCompletion{Courses: 1},
		},
		{
			Name:          "Mood Tracker",
			Description:   "Write 5 mood diary entries",
			Icon:          "📝",
			ZenCoinReward: 25,
			Requirement:   MoodDiary{Entries: 5},
		},
		{
			Name:          "Zen Ambassador",
			Description:   "Invite a friend to Restorative Lands",
			Icon:          "🤝",
			ZenCoinReward: 50,
			Requirement:   FriendReferral{Referrals: 1},
		},
	}
}
