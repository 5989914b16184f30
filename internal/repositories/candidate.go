package repositories

import (
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"alfredoptarigan/ats-engine/internal/models"
)

// CandidateRepository is the per-job candidate registry, keyed by
// job_id then candidate_id.
type CandidateRepository interface {
	Upsert(profile *models.CandidateProfile) error
	FindByID(jobID, candidateID string) (*models.CandidateProfile, error)
	FindByJob(jobID string) ([]models.CandidateProfile, error)
	DeleteByJob(jobID string) error
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

// Upsert implements CandidateRepository. Re-parsing the same resume
// overwrites the stored profile.
func (r *candidateRepository) Upsert(profile *models.CandidateProfile) error {
	if err := r.db.Save(profile).Error; err != nil {
		return fmt.Errorf("failed to save candidate %s: %w", profile.CandidateID, err)
	}
	return nil
}

// FindByID implements CandidateRepository.
func (r *candidateRepository) FindByID(jobID, candidateID string) (*models.CandidateProfile, error) {
	var profile models.CandidateProfile
	err := r.db.
		Where("job_id = ? AND candidate_id = ?", jobID, candidateID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate %s: %w", candidateID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &profile, nil
}

// FindByJob implements CandidateRepository.
func (r *candidateRepository) FindByJob(jobID string) ([]models.CandidateProfile, error) {
	var profiles []models.CandidateProfile
	err := r.db.
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return profiles, nil
}

// DeleteByJob implements CandidateRepository.
func (r *candidateRepository) DeleteByJob(jobID string) error {
	if err := r.db.Where("job_id = ?", jobID).Delete(&models.CandidateProfile{}).Error; err != nil {
		return fmt.Errorf("failed to delete candidates: %w", err)
	}
	return nil
}

type memoryCandidateRepository struct {
	mu       sync.RWMutex
	profiles map[string]map[string]models.CandidateProfile
}

func NewMemoryCandidateRepository() CandidateRepository {
	return &memoryCandidateRepository{
		profiles: make(map[string]map[string]models.CandidateProfile),
	}
}

func (r *memoryCandidateRepository) Upsert(profile *models.CandidateProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.profiles[profile.JobID] == nil {
		r.profiles[profile.JobID] = make(map[string]models.CandidateProfile)
	}
	r.profiles[profile.JobID][profile.CandidateID] = *profile
	return nil
}

func (r *memoryCandidateRepository) FindByID(jobID, candidateID string) (*models.CandidateProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[jobID][candidateID]
	if !ok {
		return nil, fmt.Errorf("candidate %s: %w", candidateID, models.ErrNotFound)
	}
	return &profile, nil
}

func (r *memoryCandidateRepository) FindByJob(jobID string) ([]models.CandidateProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profiles := make([]models.CandidateProfile, 0, len(r.profiles[jobID]))
	for _, profile := range r.profiles[jobID] {
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (r *memoryCandidateRepository) DeleteByJob(jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, jobID)
	return nil
}
