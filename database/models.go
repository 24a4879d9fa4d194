package database

type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ScheduleEntry - строка расписания для записи
type ScheduleEntry struct {
	GroupID      int64
	LessonID     int64
	AuthorID     *int64
	LessonTypeID *int64
	Weekday      int
	Overline     bool
	Num          int
	Classroom    *string
	Corps        *string
}

// ScheduleRow - пара с уже подставленными названиями
type ScheduleRow struct {
	Group      string `json:"group"`
	Weekday    int    `json:"weekday"`
	Overline   bool   `json:"overline"`
	Num        int    `json:"num"`
	Lesson     string `json:"lesson"`
	Author     string `json:"author,omitempty"`
	LessonType string `json:"lesson_type,omitempty"`
	Classroom  string `json:"classroom,omitempty"`
}

type ActiveUser struct {
	ID      int64  `json:"id"`
	TID     int64  `json:"tid"`
	GroupID *int64 `json:"group_id"`
	Group   string `json:"group"`
	VIP     bool   `json:"vip"`
}
