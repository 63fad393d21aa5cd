package notification

import (
	"fmt"
	"strings"
)

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Push is a message addressed to an FCM topic.
type Push struct {
	Topic    string
	Title    string
	Body     string
	Data     map[string]string
	Priority Priority
}

// UserTopic is the topic every device of a user subscribes to.
func UserTopic(userID string) string {
	return "user-" + userID
}

// AchievementUnlocked builds the push sent after achievements unlock.
func AchievementUnlocked(userID string, names []string, coins int) Push {
	title := "Achievement unlocked"
	if len(names) > 1 {
		title = fmt.Sprintf("%d achievements unlocked", len(names))
	}

	return Push{
		Topic: UserTopic(userID),
		Title: title,
		Body:  fmt.Sprintf("%s (+%d Zen Coins)", strings.Join(names, ", "), coins),
		Data: map[string]string{
			"type":         "achievement",
			"user_id":      userID,
			"achievements": strings.Join(names, ","),
		},
		Priority: PriorityHigh,
	}
}
