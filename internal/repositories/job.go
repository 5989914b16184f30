package repositories

import (
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"alfredoptarigan/ats-engine/internal/models"
)

type JobRepository interface {
	Upsert(job *models.JobDescription) error
	FindByID(jobID string) (*models.JobDescription, error)
	FindAll() ([]models.JobDescription, error)
	Delete(jobID string) error
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Upsert implements JobRepository.
func (r *jobRepository) Upsert(job *models.JobDescription) error {
	if err := r.db.Save(job).Error; err != nil {
		return fmt.Errorf("failed to save job %s: %w", job.ID, err)
	}
	return nil
}

// FindByID implements JobRepository.
func (r *jobRepository) FindByID(jobID string) (*models.JobDescription, error) {
	var job models.JobDescription
	if err := r.db.Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %s: %w", jobID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}

// FindAll implements JobRepository.
func (r *jobRepository) FindAll() ([]models.JobDescription, error) {
	var jobs []models.JobDescription
	if err := r.db.Order("created_at ASC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// Delete implements JobRepository.
func (r *jobRepository) Delete(jobID string) error {
	result := r.db.Where("id = ?", jobID).Delete(&models.JobDescription{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("job %s: %w", jobID, models.ErrNotFound)
	}
	return nil
}

// memoryJobRepository is the in-memory backing store: empty at startup,
// cleared on teardown. It is the default when no database is configured.
type memoryJobRepository struct {
	mu   sync.RWMutex
	jobs map[string]models.JobDescription
}

func NewMemoryJobRepository() JobRepository {
	return &memoryJobRepository{jobs: make(map[string]models.JobDescription)}
}

func (r *memoryJobRepository) Upsert(job *models.JobDescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = *job
	return nil
}

func (r *memoryJobRepository) FindByID(jobID string) (*models.JobDescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("job %s: %w", jobID, models.ErrNotFound)
	}
	return &job, nil
}

func (r *memoryJobRepository) FindAll() ([]models.JobDescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	jobs := make([]models.JobDescription, 0, len(r.jobs))
	for _, job := range r.jobs {
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (r *memoryJobRepository) Delete(jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[jobID]; !ok {
		return fmt.Errorf("job %s: %w", jobID, models.ErrNotFound)
	}
	delete(r.jobs, jobID)
	return nil
}
