package course

import "gorm.io/gorm"

// Lesson represents a content unit within a module
type Lesson struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	TextContent string `json:"text_content" gorm:"type:text"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Order within module
	IsDeleted   bool   `gorm:"default:false"`
}

// LessonCompletion tracks a student's completion of a lesson
type LessonCompletion struct {
	gorm.Model
	UserID    uint `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_lesson"`
	CourseID  uint `json:"course_id" gorm:"index;not null"`
	LessonID  uint `json:"lesson_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	IsDeleted bool `gorm:"default:false"`
}
