package demoserver

import (
	"strconv"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/klasora/console-go/internal/models"
)

// fixtureUser pairs a user with its bcrypt credential.
type fixtureUser struct {
	user         models.User
	passwordHash []byte
}

// dataset is the demo server's in-memory stand-in for the platform
// database. Everything is seeded at startup; settings patches and report
// jobs are the only mutations.
type dataset struct {
	mu            sync.RWMutex
	users         map[string]*fixtureUser // keyed by email
	usersByID     map[string]*fixtureUser
	tenants       map[string]*models.TenantProfile // keyed by slug
	students      []models.Student
	announcements []models.Announcement
}

// demoPassword is the password every seeded account accepts.
const demoPassword = "password123"

func seedDataset() (*dataset, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	users := []models.User{
		{ID: "u-super", Email: "super@greenwood.school", FullName: "Platform Operator", Role: models.RoleSuperAdmin, Active: true, CreatedAt: now},
		{ID: "u-admin", Email: "admin@greenwood.school", FullName: "Greenwood Administrator", Role: models.RoleAdmin, Active: true, TenantID: "t-greenwood", CreatedAt: now},
		{ID: "u-teacher", Email: "teacher@greenwood.school", FullName: "Greenwood Teacher", Role: models.RoleTeacher, Active: true, TenantID: "t-greenwood", CreatedAt: now},
		{ID: "u-student", Email: "student@greenwood.school", FullName: "Greenwood Student", Role: models.RoleStudent, Active: true, TenantID: "t-greenwood", CreatedAt: now},
	}

	ds := &dataset{
		users:     make(map[string]*fixtureUser, len(users)),
		usersByID: make(map[string]*fixtureUser, len(users)),
		tenants:   make(map[string]*models.TenantProfile),
	}
	for i := range users {
		fu := &fixtureUser{user: users[i], passwordHash: hash}
		ds.users[users[i].Email] = fu
		ds.usersByID[users[i].ID] = fu
	}

	ds.tenants["greenwood"] = &models.TenantProfile{
		Tenant: models.Tenant{
			ID:        "t-greenwood",
			Name:      "Greenwood Academy",
			Slug:      "greenwood",
			Status:    models.TenantActive,
			Plan:      "standard",
			CreatedAt: now,
		},
		Settings: models.TenantSettings{
			"theme":                "emerald",
			"grading_scale":        "0-100",
			"attendance_threshold": 0.85,
		},
	}
	ds.tenants["hillcrest"] = &models.TenantProfile{
		Tenant: models.Tenant{
			ID:        "t-hillcrest",
			Name:      "Hillcrest High",
			Slug:      "hillcrest",
			Status:    models.TenantSuspended,
			Plan:      "trial",
			CreatedAt: now,
		},
		Settings: models.TenantSettings{},
	}

	firstNames := []string{"Amara", "Bayu", "Citra", "Dewi", "Eko", "Farah", "Gita", "Hadi", "Intan", "Joko"}
	for i, name := range firstNames {
		ds.students = append(ds.students, models.Student{
			ID:             "s-" + strconv.Itoa(i+1),
			AdmissionNo:    "GW-" + strconv.Itoa(1000+i),
			FullName:       name + " Wijaya",
			Gender:         []string{"F", "M"}[i%2],
			BirthDate:      now.AddDate(-15, 0, i),
			ClassID:        "c-" + strconv.Itoa(i%3+1),
			Active:         true,
			EnrollmentDate: now.AddDate(-1, 0, 0),
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	ds.announcements = []models.Announcement{
		{ID: "a-1", Title: "Term begins", Content: "Classes resume Monday.", Audience: models.AnnouncementAudienceAll, Pinned: true, PublishedAt: now, CreatedBy: "u-admin", CreatedAt: now, UpdatedAt: now},
		{ID: "a-2", Title: "Staff meeting", Content: "Teachers meet Friday 3pm.", Audience: models.AnnouncementAudienceTeachers, PublishedAt: now.AddDate(0, 0, 2), CreatedBy: "u-admin", CreatedAt: now, UpdatedAt: now},
	}

	return ds, nil
}

func (d *dataset) userByEmail(email string) (*fixtureUser, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	fu, ok := d.users[email]
	return fu, ok
}

func (d *dataset) userByID(id string) (*fixtureUser, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	fu, ok := d.usersByID[id]
	return fu, ok
}

func (d *dataset) tenantBySlug(slug string) (*models.TenantProfile, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	profile, ok := d.tenants[slug]
	return profile, ok
}

func (d *dataset) patchSettings(slug string, patch models.TenantSettings) (models.TenantSettings, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	profile, ok := d.tenants[slug]
	if !ok {
		return nil, false
	}
	profile.Settings = profile.Settings.Merge(patch)
	return profile.Settings, true
}

func (d *dataset) createTenant(req models.CreateTenantRequest, now time.Time) (*models.Tenant, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.tenants[req.Slug]; exists {
		return nil, false
	}
	profile := &models.TenantProfile{
		Tenant: models.Tenant{
			ID:        "t-" + req.Slug,
			Name:      req.Name,
			Slug:      req.Slug,
			Status:    models.TenantActive,
			Plan:      req.Plan,
			CreatedAt: now,
		},
		Settings: models.TenantSettings{},
	}
	d.tenants[req.Slug] = profile
	tenant := profile.Tenant
	return &tenant, true
}

func (d *dataset) setTenantStatus(id string, status models.TenantStatus) (*models.Tenant, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, profile := range d.tenants {
		if profile.ID == id {
			profile.Status = status
			tenant := profile.Tenant
			return &tenant, true
		}
	}
	return nil, false
}

func (d *dataset) listTenants() []models.Tenant {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.Tenant, 0, len(d.tenants))
	for _, p := range d.tenants {
		out = append(out, p.Tenant)
	}
	return out
}

func (d *dataset) listStudents(page, pageSize int) ([]models.Student, *models.Pagination) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return paginate(d.students, page, pageSize)
}

func (d *dataset) listAnnouncements(page, pageSize int) ([]models.Announcement, *models.Pagination) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return paginate(d.announcements, page, pageSize)
}

func paginate[T any](items []T, page, pageSize int) ([]T, *models.Pagination) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], &models.Pagination{Page: page, PageSize: pageSize, TotalCount: len(items)}
}
