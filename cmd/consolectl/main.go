// consolectl is a terminal front-end over the console SDK: it drives the
// session and tenant stores the same way the admin UI does, which makes it
// a convenient smoke test against the demo server or a real backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/klasora/console-go/internal/api"
	"github.com/klasora/console-go/internal/models"
	"github.com/klasora/console-go/internal/resources"
	"github.com/klasora/console-go/internal/session"
	"github.com/klasora/console-go/internal/tenant"
	"github.com/klasora/console-go/internal/tokenstore"
	"github.com/klasora/console-go/pkg/config"
	"github.com/klasora/console-go/pkg/export"
	"github.com/klasora/console-go/pkg/logger"
)

const usage = `usage: consolectl <command> [flags]

commands:
  login          authenticate and persist the session
  logout         drop the stored session
  whoami         print the authenticated user
  tenant         resolve and show the active tenant
  settings       patch a tenant setting (key=value ...)
  students       list students
  announcements  list announcements
  report         generate a report and export it to csv or pdf
`

type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  *api.Client
	session *session.Store
	tenants *tenant.Store
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	a := newApp(cfg, logr)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "consolectl: %v\n", err)
		os.Exit(1)
	}
}

func newApp(cfg *config.Config, logr *zap.Logger) *app {
	client := api.New(api.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Tokens:  tokenstore.NewFile(cfg.Token.Path),
		Logger:  logr,
	})

	var backend session.Backend
	if cfg.Demo.Enabled {
		backend = session.NewDemoBackend(cfg.Demo.FixturePath, nil)
	} else {
		backend = session.NewAPIBackend(client)
	}
	sess := session.New(backend, logr)
	client.SetOnUnauthorized(sess.HandleUnauthorized)

	reserved := cfg.Tenant.ReservedSubdomains
	if len(reserved) == 0 {
		reserved = tenant.DefaultReservedSubdomains
	}
	tenants := tenant.NewStore(tenant.Options{
		Client:   client,
		Logger:   logr,
		Reserved: reserved,
		Override: cfg.Tenant.Override,
	})

	return &app{cfg: cfg, logger: logr, client: client, session: sess, tenants: tenants}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		a.session.Logout()
		fmt.Println("logged out")
		return nil
	case "whoami":
		return a.cmdWhoami(ctx)
	case "tenant":
		return a.cmdTenant(ctx, args)
	case "settings":
		return a.cmdSettings(ctx, args)
	case "students":
		return a.cmdStudents(ctx, args)
	case "announcements":
		return a.cmdAnnouncements(ctx, args)
	case "report":
		return a.cmdReport(ctx, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args) //nolint:errcheck

	if err := a.session.Login(ctx, *email, *password); err != nil {
		return err
	}
	user := a.session.User()
	fmt.Printf("logged in as %s (%s)\n", user.Email, user.Role)
	return nil
}

func (a *app) cmdWhoami(ctx context.Context) error {
	a.session.Bootstrap(ctx)
	user := a.session.User()
	if user == nil {
		return fmt.Errorf("not logged in")
	}
	fmt.Printf("id:     %s\n", user.ID)
	fmt.Printf("name:   %s\n", user.FullName)
	fmt.Printf("email:  %s\n", user.Email)
	fmt.Printf("role:   %s\n", user.Role)
	if user.TenantID != "" {
		fmt.Printf("tenant: %s\n", user.TenantID)
	}
	return nil
}

func (a *app) cmdTenant(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tenant", flag.ExitOnError)
	pageURL := fs.String("url", "", "console URL to resolve the tenant from")
	fs.Parse(args) //nolint:errcheck

	a.tenants.Init(ctx, *pageURL)
	if msg := a.tenants.Err(); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	t := a.tenants.Tenant()
	if t == nil {
		fmt.Println("no tenant resolved (main domain)")
		return nil
	}
	fmt.Printf("name:   %s\n", t.Name)
	fmt.Printf("slug:   %s\n", t.Slug)
	fmt.Printf("status: %s\n", t.Status)
	fmt.Printf("plan:   %s\n", t.Plan)
	for k, v := range a.tenants.Settings() {
		fmt.Printf("setting %s=%v\n", k, v)
	}
	return nil
}

func (a *app) cmdSettings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	pageURL := fs.String("url", "", "console URL to resolve the tenant from")
	fs.Parse(args) //nolint:errcheck

	patch := models.TenantSettings{}
	for _, pair := range fs.Args() {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return fmt.Errorf("expected key=value, got %q", pair)
		}
		patch[key] = value
	}
	if len(patch) == 0 {
		return fmt.Errorf("no settings given")
	}

	a.tenants.Init(ctx, *pageURL)
	if msg := a.tenants.Err(); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	if err := a.tenants.UpdateSettings(ctx, patch); err != nil {
		return err
	}
	fmt.Printf("updated %d setting(s)\n", len(patch))
	return nil
}

func (a *app) cmdStudents(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("students", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	pageSize := fs.Int("page-size", 20, "page size")
	search := fs.String("search", "", "name or admission number filter")
	fs.Parse(args) //nolint:errcheck

	students, pagination, err := resources.NewStudents(a.client).List(ctx, models.StudentFilter{
		Page: *page, PageSize: *pageSize, Search: *search,
	})
	if err != nil {
		return err
	}
	for _, s := range students {
		fmt.Printf("%-10s %-24s class=%s active=%t\n", s.AdmissionNo, s.FullName, s.ClassID, s.Active)
	}
	if pagination != nil {
		fmt.Printf("page %d of %d total\n", pagination.Page, pagination.TotalCount)
	}
	return nil
}

func (a *app) cmdAnnouncements(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("announcements", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	pageSize := fs.Int("page-size", 20, "page size")
	fs.Parse(args) //nolint:errcheck

	announcements, _, err := resources.NewAnnouncements(a.client).List(ctx, models.AnnouncementFilter{
		Page: *page, PageSize: *pageSize,
	})
	if err != nil {
		return err
	}
	for _, ann := range announcements {
		pin := " "
		if ann.Pinned {
			pin = "*"
		}
		fmt.Printf("%s %-20s %s\n", pin, ann.Title, ann.PublishedAt.Format("2006-01-02"))
	}
	return nil
}

func (a *app) cmdReport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	reportType := fs.String("type", string(models.ReportEnrollment), "report type: grades, attendance, fees, enrollment")
	format := fs.String("format", "csv", "output format: csv or pdf")
	outPath := fs.String("out", "", "output file (default <type>.<format>)")
	fs.Parse(args) //nolint:errcheck

	reports := resources.NewReports(a.client)

	job, err := reports.Generate(ctx, models.ReportRequest{Type: models.ReportType(*reportType)})
	if err != nil {
		return err
	}
	fmt.Printf("report %s queued\n", job.ID)

	job, err = a.awaitReport(ctx, reports, job.ID)
	if err != nil {
		return err
	}

	data, err := reports.Download(ctx, job.ID)
	if err != nil {
		return err
	}

	var rendered []byte
	switch *format {
	case "csv":
		rendered, err = export.NewCSVExporter().Render(*data)
	case "pdf":
		rendered, err = export.NewPDFExporter().Render(*data)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		return err
	}

	path := *outPath
	if path == "" {
		path = *reportType + "." + *format
	}
	if err := os.WriteFile(path, rendered, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bytes)\n", path, len(rendered))
	return nil
}

// awaitReport polls the report job until it completes or the context ends.
func (a *app) awaitReport(ctx context.Context, reports *resources.Reports, id string) (*models.ReportJob, error) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			job, err := reports.Status(ctx, id)
			if err != nil {
				return nil, err
			}
			switch job.Status {
			case models.ReportCompleted:
				return job, nil
			case models.ReportFailed:
				return nil, fmt.Errorf("report failed: %s", job.Error)
			}
		}
	}
}
