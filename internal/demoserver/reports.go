package demoserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/klasora/console-go/internal/models"
	appErrors "github.com/klasora/console-go/pkg/errors"
	"github.com/klasora/console-go/pkg/jobs"
	"github.com/klasora/console-go/pkg/response"
)

func (s *Server) handleGenerateReport(c *gin.Context) {
	req := models.ReportRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid report payload"))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report payload"))
		return
	}

	job := &models.ReportJob{
		ID:          uuid.NewString(),
		Type:        req.Type,
		Status:      models.ReportPending,
		RequestedAt: time.Now().UTC(),
	}
	s.reportMu.Lock()
	s.reportJobs[job.ID] = job
	s.reportMu.Unlock()

	if err := s.reportQueue.Enqueue(jobs.Job{ID: job.ID, Type: string(req.Type), Payload: req}); err != nil {
		s.failReport(job.ID, "report worker unavailable")
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue report"))
		return
	}

	response.Created(c, job)
}

func (s *Server) handleReportStatus(c *gin.Context) {
	job, ok := s.reportByID(c.Param("id"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "report not found"))
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

func (s *Server) handleReportDownload(c *gin.Context) {
	job, ok := s.reportByID(c.Param("id"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "report not found"))
		return
	}
	if job.Status != models.ReportCompleted {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "report is not ready"))
		return
	}
	response.JSON(c, http.StatusOK, s.buildDataset(job.Type), nil)
}

// handleReportFile serves a rendered report file; the signed token is the
// only authorization.
func (s *Server) handleReportFile(c *gin.Context) {
	jobID, relPath, err := s.signer.Parse(c.Param("token"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download link"))
		return
	}
	if _, ok := s.reportByID(jobID); !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "report not found"))
		return
	}
	c.FileAttachment(filepath.Join(s.cfg.ReportDir, relPath), relPath)
}

// runReportJob simulates backend report generation: it renders the
// dataset to CSV on disk and publishes a signed download URL.
func (s *Server) runReportJob(_ context.Context, job jobs.Job) error {
	req, ok := job.Payload.(models.ReportRequest)
	if !ok {
		s.failReport(job.ID, "malformed report request")
		return nil
	}

	s.setReportStatus(job.ID, models.ReportRunning, 50)

	data := s.buildDataset(req.Type)
	rendered, err := s.exporter.Render(data)
	if err != nil {
		s.failReport(job.ID, err.Error())
		return err
	}

	if err := os.MkdirAll(s.cfg.ReportDir, 0o755); err != nil {
		s.failReport(job.ID, err.Error())
		return err
	}
	fileName := job.ID + ".csv"
	if err := os.WriteFile(filepath.Join(s.cfg.ReportDir, fileName), rendered, 0o644); err != nil {
		s.failReport(job.ID, err.Error())
		return err
	}

	token, _, err := s.signer.Generate(job.ID, fileName)
	if err != nil {
		s.failReport(job.ID, err.Error())
		return err
	}

	now := time.Now().UTC()
	s.reportMu.Lock()
	if stored, exists := s.reportJobs[job.ID]; exists {
		stored.Status = models.ReportCompleted
		stored.Progress = 100
		stored.ResultURL = "/api/reports/files/" + token
		stored.CompletedAt = &now
	}
	s.reportMu.Unlock()

	s.logger.Info("report generated", zap.String("job_id", job.ID), zap.String("type", string(req.Type)))
	return nil
}

func (s *Server) buildDataset(reportType models.ReportType) models.ReportDataset {
	switch reportType {
	case models.ReportEnrollment:
		students, _ := s.data.listStudents(1, 100)
		rows := make([]map[string]string, 0, len(students))
		for _, st := range students {
			rows = append(rows, map[string]string{
				"admission_no": st.AdmissionNo,
				"full_name":    st.FullName,
				"class_id":     st.ClassID,
				"active":       strconv.FormatBool(st.Active),
			})
		}
		return models.ReportDataset{
			Title:   "Enrollment",
			Headers: []string{"admission_no", "full_name", "class_id", "active"},
			Rows:    rows,
		}
	default:
		// The other report kinds share one synthetic shape in the demo.
		return models.ReportDataset{
			Title:   fmt.Sprintf("%s report", reportType),
			Headers: []string{"metric", "value"},
			Rows: []map[string]string{
				{"metric": "records", "value": "42"},
				{"metric": "period", "value": "current term"},
			},
		}
	}
}

func (s *Server) reportByID(id string) (models.ReportJob, bool) {
	s.reportMu.Lock()
	defer s.reportMu.Unlock()
	job, ok := s.reportJobs[id]
	if !ok {
		return models.ReportJob{}, false
	}
	return *job, true
}

func (s *Server) setReportStatus(id string, status models.ReportStatus, progress int) {
	s.reportMu.Lock()
	defer s.reportMu.Unlock()
	if job, ok := s.reportJobs[id]; ok {
		job.Status = status
		job.Progress = progress
	}
}

func (s *Server) failReport(id, msg string) {
	s.reportMu.Lock()
	defer s.reportMu.Unlock()
	if job, ok := s.reportJobs[id]; ok {
		job.Status = models.ReportFailed
		job.Error = msg
	}
}
