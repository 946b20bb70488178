package resources

import (
	"context"
	"net/http"
	"net/url"

	"github.com/klasora/console-go/internal/api"
	"github.com/klasora/console-go/internal/models"
)

// Announcements is the client for tenant notices.
type Announcements struct {
	client *api.Client
}

// NewAnnouncements constructs an Announcements client.
func NewAnnouncements(client *api.Client) *Announcements {
	return &Announcements{client: client}
}

// List fetches one page of announcements matching the filter.
func (a *Announcements) List(ctx context.Context, f models.AnnouncementFilter) ([]models.Announcement, *models.Pagination, error) {
	q := baseQuery(f.Page, f.PageSize)
	setIf(q, "audience", string(f.Audience))
	setIf(q, "class_id", f.ClassID)
	setBool(q, "pinned", f.Pinned)

	var out []models.Announcement
	pagination, err := a.client.Do(ctx, http.MethodGet, "/api/announcements", q, nil, &out)
	if err != nil {
		return nil, nil, err
	}
	return out, pagination, nil
}

// Publish creates a new announcement.
func (a *Announcements) Publish(ctx context.Context, ann *models.Announcement) (*models.Announcement, error) {
	out := &models.Announcement{}
	if _, err := a.client.Do(ctx, http.MethodPost, "/api/announcements", nil, ann, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update amends an announcement.
func (a *Announcements) Update(ctx context.Context, id string, ann *models.Announcement) (*models.Announcement, error) {
	out := &models.Announcement{}
	if _, err := a.client.Do(ctx, http.MethodPut, "/api/announcements/"+url.PathEscape(id), nil, ann, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes an announcement.
func (a *Announcements) Delete(ctx context.Context, id string) error {
	_, err := a.client.Do(ctx, http.MethodDelete, "/api/announcements/"+url.PathEscape(id), nil, nil, nil)
	return err
}
