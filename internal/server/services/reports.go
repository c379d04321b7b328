package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/verischol/internal/dbx"
	"github.com/dmitrijs2005/verischol/internal/logging"
	"github.com/dmitrijs2005/verischol/internal/server/access"
	"github.com/dmitrijs2005/verischol/internal/server/auth"
	sc "github.com/dmitrijs2005/verischol/internal/server/config"
	"github.com/dmitrijs2005/verischol/internal/server/models"
	"github.com/dmitrijs2005/verischol/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) error {
		_, err := c.PutObject(ctx, in)
		return err
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Report is the integrity summary of one project as exported to object
// storage. It carries digests and statuses, never content.
type Report struct {
	ProjectID   string         `json:"project_id"`
	ProjectName string         `json:"project_name"`
	GeneratedBy string         `json:"generated_by"`
	GeneratedAt time.Time      `json:"generated_at"`
	Records     []ReportRecord `json:"records"`
	Audit       []ReportEvent  `json:"audit"`
}

type ReportRecord struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	ProducerID     string     `json:"producer_id"`
	RecipientID    string     `json:"recipient_id"`
	Digest         string     `json:"digest"`
	Status         string     `json:"status"`
	LastVerifiedBy *string    `json:"last_verified_by,omitempty"`
	LastVerifiedAt *time.Time `json:"last_verified_at,omitempty"`
}

type ReportEvent struct {
	RecordID  string          `json:"record_id"`
	ActorID   *string         `json:"actor_id,omitempty"`
	Action    string          `json:"action"`
	Result    string          `json:"result"`
	Details   json.RawMessage `json:"details"`
	CreatedAt time.Time       `json:"created_at"`
}

// ExportedReport locates an uploaded report.
type ExportedReport struct {
	Key       string
	URL       string
	ExpiresAt time.Time
}

type ReportService struct {
	tx     dbx.Transactor
	repos  repomanager.RepositoryManager
	config *sc.Config
	now    func() time.Time
	logger logging.Logger
}

func NewReportService(tx dbx.Transactor, repos repomanager.RepositoryManager, config *sc.Config, logger logging.Logger) *ReportService {
	return &ReportService{
		tx:     tx,
		repos:  repos,
		config: config,
		now:    time.Now,
		logger: logger.With("module", "reports"),
	}
}

// ReportKey builds the object key for a new report of projectID.
func ReportKey(projectID string, at time.Time) string {
	return fmt.Sprintf("reports/%s/%d/%02d/%02d/%v.json", projectID, at.Year(), at.Month(), at.Day(), uuid.New())
}

// Build assembles the report without uploading it.
func (s *ReportService) Build(ctx context.Context, id *auth.Identity, projectID string) (*Report, error) {
	if err := requireRole(ctx, s.logger, id, access.ResourceAuditLog, access.ActionRead); err != nil {
		return nil, err
	}
	if _, err := membership(ctx, s.repos, s.tx.Conn(), id, projectID); err != nil {
		return nil, err
	}

	db := s.tx.Conn()
	project, err := s.repos.Projects(db).Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	records, err := s.repos.Records(db).ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	events, err := s.repos.Audit(db).ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	r := &Report{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		GeneratedBy: id.PrincipalID,
		GeneratedAt: s.now().UTC(),
		Records:     make([]ReportRecord, 0, len(records)),
		Audit:       make([]ReportEvent, 0, len(events)),
	}
	for _, rec := range records {
		r.Records = append(r.Records, ReportRecord{
			ID:             rec.ID,
			Title:          rec.Title,
			ProducerID:     rec.ProducerID,
			RecipientID:    rec.RecipientID,
			Digest:         rec.Digest,
			Status:         string(rec.Status),
			LastVerifiedBy: rec.LastVerifiedBy,
			LastVerifiedAt: rec.LastVerifiedAt,
		})
	}
	for _, e := range events {
		r.Audit = append(r.Audit, reportEvent(e))
	}
	return r, nil
}

// SystemStats counts principals, projects, records and audit entries across
// the whole system. Administrators only.
func (s *ReportService) SystemStats(ctx context.Context, id *auth.Identity) (*models.SystemStats, error) {
	if err := requireRole(ctx, s.logger, id, access.ResourceSystemSettings, access.ActionRead); err != nil {
		return nil, err
	}
	return s.repos.Stats(s.tx.Conn()).Collect(ctx)
}

// ExportProjectReport uploads the project's report to the configured bucket
// and returns a presigned download link.
func (s *ReportService) ExportProjectReport(ctx context.Context, id *auth.Identity, projectID string) (*ExportedReport, error) {
	report, err := s.Build(ctx, id, projectID)
	if err != nil {
		return nil, err
	}
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding report: %w", err)
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := ReportKey(projectID, report.GeneratedAt)

	err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("error uploading report: %w", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.ReportURLValidity))
	if err != nil {
		return nil, fmt.Errorf("error presigning report: %w", err)
	}

	s.logger.Info(ctx, "report exported", "project_id", projectID, "key", key)
	return &ExportedReport{Key: key, URL: req.URL, ExpiresAt: s.now().Add(s.config.ReportURLValidity)}, nil
}

func (s *ReportService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

func reportEvent(e *models.AuditEntry) ReportEvent {
	return ReportEvent{
		RecordID:  e.RecordID,
		ActorID:   e.ActorID,
		Action:    string(e.Action),
		Result:    e.Result,
		Details:   e.Details,
		CreatedAt: e.CreatedAt,
	}
}
