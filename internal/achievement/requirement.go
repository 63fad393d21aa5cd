package achievement

import (
	"encoding/json"
	"fmt"
)

type Kind string

const (
	KindDailyPractice    Kind = "daily_practice"
	KindConsecutiveDays  Kind = "consecutive_days"
	KindCourseCompletion Kind = "course_completion"
	KindMoodDiary        Kind = "mood_diary"
	KindFriendReferral   Kind = "friend_referral"
)

// Requirement is one of DailyPractice, ConsecutiveDays, CourseCompletion,
// MoodDiary or FriendReferral. The set is closed by the unexported method.
type Requirement interface {
	Kind() Kind
	requirement()
}

// DailyPractice holds when the user has logged at least Sessions sessions,
// or, with Daily set, when they practiced today.
type DailyPractice struct {
	Sessions int  `json:"sessions,omitempty"`
	Daily    bool `json:"daily,omitempty"`
}

type ConsecutiveDays struct {
	Days int `json:"days"`
}

type CourseCompletion struct {
	Courses int `json:"courses"`
}

type MoodDiary struct {
	Entries int `json:"entries"`
}

type FriendReferral struct {
	Referrals int `json:"referrals"`
}

func (DailyPractice) Kind() Kind    { return KindDailyPractice }
func (ConsecutiveDays) Kind() Kind  { return KindConsecutiveDays }
func (CourseCompletion) Kind() Kind { return KindCourseCompletion }
func (MoodDiary) Kind() Kind        { return KindMoodDiary }
func (FriendReferral) Kind() Kind   { return KindFriendReferral }

func (DailyPractice) requirement()    {}
func (ConsecutiveDays) requirement()  {}
func (CourseCompletion) requirement() {}
func (MoodDiary) requirement()        {}
func (FriendReferral) requirement()   {}

// Satisfied checks req against the counters.
func Satisfied(req Requirement, c Counters) bool {
	switch r := req.(type) {
	case DailyPractice:
		if r.Sessions > 0 && c.TotalSessions >= r.Sessions {
			return true
		}
		return r.Daily && c.PracticedToday
	case ConsecutiveDays:
		return c.ConsecutiveDays >= r.Days
	case CourseCompletion:
		return c.CompletedCourses >= r.Courses
	case MoodDiary:
		return c.MoodEntries >= r.Entries
	case FriendReferral:
		return c.Referrals >= r.Referrals
	default:
		return false
	}
}

// MarshalRequirement encodes req as a flat object tagged by "type".
func MarshalRequirement(req Requirement) ([]byte, error) {
	var body any
	switch r := req.(type) {
	case DailyPractice:
		body = struct {
			Type Kind `json:"type"`
			DailyPractice
		}{r.Kind(), r}
	case ConsecutiveDays:
		body = struct {
			Type Kind `json:"type"`
			ConsecutiveDays
		}{r.Kind(), r}
	case CourseCompletion:
		body = struct {
			Type Kind `json:"type"`
			CourseCompletion
		}{r.Kind(), r}
	case MoodDiary:
		body = struct {
			Type Kind `json:"type"`
			MoodDiary
		}{r.Kind(), r}
	case FriendReferral:
		body = struct {
			Type Kind `json:"type"`
			FriendReferral
		}{r.Kind(), r}
	default:
		return nil, fmt.Errorf("unknown requirement %T", req)
	}

	return json.Marshal(body)
}

// UnmarshalRequirement decodes the output of MarshalRequirement.
func UnmarshalRequirement(data []byte) (Requirement, error) {
	var tag struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("invalid requirement: %w", err)
	}

	var (
		req Requirement
		err error
	)
	switch tag.Type {
	case KindDailyPractice:
		var r DailyPractice
		err = json.Unmarshal(data, &r)
		req = r
	case KindConsecutiveDays:
		var r ConsecutiveDays
		err = json.Unmarshal(data, &r)
		req = r
	case KindCourseCompletion:
		var r CourseCompletion
		err = json.Unmarshal(data, &r)
		req = r
	case KindMoodDiary:
		var r MoodDiary
		err = json.Unmarshal(data, &r)
		req = r
	case KindFriendReferral:
		var r FriendReferral
		err = json.Unmarshal(data, &r)
		req = r
	default:
		return nil, fmt.Errorf("unknown requirement type %q", tag.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %s requirement: %w", tag.Type, err)
	}

	return req, nil
}
