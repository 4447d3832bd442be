package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cleankili/backend/internal/config"
	"github.com/cleankili/backend/internal/models"
)

var (
	ErrAdminNotFound  = errors.New("admin not found")
	ErrReportNotFound = errors.New("report not found")
)

// StatusCounts holds per-status report totals for a time window.
type StatusCounts struct {
	Total      int64
	Pending    int64
	InProgress int64
	Resolved   int64
}

type Storage interface {
	CreateAdmin(ctx context.Context, admin *models.Admin) error
	GetAdminByID(ctx context.Context, id string) (*models.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	ListAdmins(ctx context.Context) ([]*models.Admin, error)
	SetAdminVerified(ctx context.Context, id string) error
	UpdateAdminPassword(ctx context.Context, id, passwordHash string) error

	CreateReport(ctx context.Context, report *models.Report) error
	GetReport(ctx context.Context, id string) (*models.Report, error)
	ListReports(ctx context.Context, status models.ReportStatus) ([]*models.Report, error)
	UpdateReportStatus(ctx context.Context, id string, status models.ReportStatus) (*models.Report, error)
	CountReportsSince(ctx context.Context, since time.Time) (StatusCounts, error)

	Ping(ctx context.Context) error
}

type PostgresStorage struct {
	db *gorm.DB
}

func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.Admin{}, &models.Report{}); err != nil {
		return nil, err
	}

	return &PostgresStorage{db: db}, nil
}

func (s *PostgresStorage) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(admin).Error
}

func (s *PostgresStorage) GetAdminByID(ctx context.Context, id string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// GetAdminByEmail matches the email column exactly; on Postgres text
// columns this is case-sensitive, and no normalization is applied.
func (s *PostgresStorage) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).First(&admin, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (s *PostgresStorage) ListAdmins(ctx context.Context) ([]*models.Admin, error) {
	var admins []*models.Admin
	if err := s.db.WithContext(ctx).Order("created_at").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (s *PostgresStorage) SetAdminVerified(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&models.Admin{}).Where("id = ?", id).Update("is_verified", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAdminNotFound
	}
	return nil
}

func (s *PostgresStorage) UpdateAdminPassword(ctx context.Context, id, passwordHash string) error {
	res := s.db.WithContext(ctx).Model(&models.Admin{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAdminNotFound
	}
	return nil
}

func (s *PostgresStorage) CreateReport(ctx context.Context, report *models.Report) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.Status == "" {
		report.Status = models.StatusPending
	}
	return s.db.WithContext(ctx).Create(report).Error
}

func (s *PostgresStorage) GetReport(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	if err := s.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (s *PostgresStorage) ListReports(ctx context.Context, status models.ReportStatus) ([]*models.Report, error) {
	query := s.db.WithContext(ctx).Order("created_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var reports []*models.Report
	if err := query.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *PostgresStorage) UpdateReportStatus(ctx context.Context, id string, status models.ReportStatus) (*models.Report, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(report).Update("status", status).Error; err != nil {
		return nil, err
	}
	report.Status = status
	return report, nil
}

func (s *PostgresStorage) CountReportsSince(ctx context.Context, since time.Time) (StatusCounts, error) {
	var counts StatusCounts
	type row struct {
		Status models.ReportStatus
		N      int64
	}
	var rows []row
	err := s.db.WithContext(ctx).
		Model(&models.Report{}).
		Select("status, count(*) as n").
		Where("created_at >= ?", since).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return counts, err
	}
	for _, r := range rows {
		counts.Total += r.N
		switch r.Status {
		case models.StatusPending:
			counts.Pending = r.N
		case models.StatusInProgress:
			counts.InProgress = r.N
		case models.StatusResolved:
			counts.Resolved = r.N
		}
	}
	return counts, nil
}

func (s *PostgresStorage) Ping(ctx context.Context) error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// InMemoryStorage is a map-backed Storage used in tests.
type InMemoryStorage struct {
	mu      sync.RWMutex
	admins  map[string]*models.Admin
	reports map[string]*models.Report
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		admins:  make(map[string]*models.Admin),
		reports: make(map[string]*models.Report),
	}
}

func (s *InMemoryStorage) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now()
	}
	s.admins[admin.ID] = admin
	return nil
}

func (s *InMemoryStorage) GetAdminByID(ctx context.Context, id string) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	admin, exists := s.admins[id]
	if !exists {
		return nil, ErrAdminNotFound
	}
	return admin, nil
}

func (s *InMemoryStorage) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, admin := range s.admins {
		if admin.Email == email {
			return admin, nil
		}
	}
	return nil, ErrAdminNotFound
}

func (s *InMemoryStorage) ListAdmins(ctx context.Context) ([]*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	admins := make([]*models.Admin, 0, len(s.admins))
	for _, admin := range s.admins {
		admins = append(admins, admin)
	}
	sort.Slice(admins, func(i, j int) bool {
		return admins[i].CreatedAt.Before(admins[j].CreatedAt)
	})
	return admins, nil
}

func (s *InMemoryStorage) SetAdminVerified(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	admin, exists := s.admins[id]
	if !exists {
		return ErrAdminNotFound
	}
	admin.IsVerified = true
	return nil
}

func (s *InMemoryStorage) UpdateAdminPassword(ctx context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	admin, exists := s.admins[id]
	if !exists {
		return ErrAdminNotFound
	}
	admin.PasswordHash = passwordHash
	return nil
}

func (s *InMemoryStorage) CreateReport(ctx context.Context, report *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.Status == "" {
		report.Status = models.StatusPending
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}
	s.reports[report.ID] = report
	return nil
}

func (s *InMemoryStorage) GetReport(ctx context.Context, id string) (*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, exists := s.reports[id]
	if !exists {
		return nil, ErrReportNotFound
	}
	return report, nil
}

func (s *InMemoryStorage) ListReports(ctx context.Context, status models.ReportStatus) ([]*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var reports []*models.Report
	for _, report := range s.reports {
		if status == "" || report.Status == status {
			reports = append(reports, report)
		}
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}

func (s *InMemoryStorage) UpdateReportStatus(ctx context.Context, id string, status models.ReportStatus) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, exists := s.reports[id]
	if !exists {
		return nil, ErrReportNotFound
	}
	report.Status = status
	return report, nil
}

func (s *InMemoryStorage) CountReportsSince(ctx context.Context, since time.Time) (StatusCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var counts StatusCounts
	for _, report := range s.reports {
		if report.CreatedAt.Before(since) {
			continue
		}
		counts.Total++
		switch report.Status {
		case models.StatusPending:
			counts.Pending++
		case models.StatusInProgress:
			counts.InProgress++
		case models.StatusResolved:
			counts.Resolved++
		}
	}
	return counts, nil
}

func (s *InMemoryStorage) Ping(ctx context.Context) error {
	return nil
}

func BuildDSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.SSLMode,
	)
}
