package course

import "gorm.io/gorm"

// Course statuses
const (
	CourseDraft           = "DRAFT"
	CoursePendingApproval = "PENDING_APPROVAL"
	CoursePublished       = "PUBLISHED"
	CourseRejected        = "REJECTED"
)

// Course represents a learning course
type Course struct {
	gorm.Model
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Author          string  `json:"author"`
	Workload        int64   `json:"workload" gorm:"default:0"` // workload in hours
	PassingScore    float64 `json:"passing_score" gorm:"default:7"`
	Status          string  `json:"status" gorm:"default:'DRAFT'"` // DRAFT, PENDING_APPROVAL, PUBLISHED, REJECTED
	RejectionReason string  `json:"rejection_reason"`
	Rating          uint    `json:"rating" gorm:"default:0"`
	ThumbnailURL    string  `json:"thumbnail_url"`
	IsDeleted       bool    `gorm:"default:false"`
}
