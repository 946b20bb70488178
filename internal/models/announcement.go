package models

import "time"

// AnnouncementAudience defines who can see an announcement.
type AnnouncementAudience string

const (
	AnnouncementAudienceAll      AnnouncementAudience = "all"
	AnnouncementAudienceTeachers AnnouncementAudience = "teachers"
	AnnouncementAudienceStudents AnnouncementAudience = "students"
	AnnouncementAudienceParents  AnnouncementAudience = "parents"
	AnnouncementAudienceClass    AnnouncementAudience = "class"
)

// Announcement is a tenant-wide or class-scoped notice.
type Announcement struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Content       string               `json:"content"`
	Audience      AnnouncementAudience `json:"audience"`
	TargetClassID string               `json:"target_class_id,omitempty"`
	Pinned        bool                 `json:"pinned"`
	PublishedAt   time.Time            `json:"published_at"`
	ExpiresAt     *time.Time           `json:"expires_at,omitempty"`
	CreatedBy     string               `json:"created_by"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// AnnouncementFilter encapsulates search parameters for announcements.
type AnnouncementFilter struct {
	Audience AnnouncementAudience
	ClassID  string
	Pinned   *bool
	Page     int
	PageSize int
}
