package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-engine/internal/models"
	"alfredoptarigan/ats-engine/internal/repositories"
	"alfredoptarigan/ats-engine/internal/services"
)

type JobHandler struct {
	jobRepo     repositories.JobRepository
	candRepo    repositories.CandidateRepository
	resultCache repositories.ResultCache
	retriever   services.RetrievalService
}

func NewJobHandler(
	jobRepo repositories.JobRepository,
	candRepo repositories.CandidateRepository,
	resultCache repositories.ResultCache,
	retriever services.RetrievalService,
) *JobHandler {
	return &JobHandler{
		jobRepo:     jobRepo,
		candRepo:    candRepo,
		resultCache: resultCache,
		retriever:   retriever,
	}
}

// HandleCreateJob handles POST /jobs
func (h *JobHandler) HandleCreateJob(c *fiber.Ctx) error {
	var req models.JobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	job := jobFromRequest(&req)
	if job.ID == "" {
		job.ID = newJobID()
	}
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt

	if err := h.jobRepo.Upsert(job); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleUpdateJob handles PUT /jobs/:job_id. Stored candidates survive the
// update; cached evaluations do not, since the requirements they were
// scored against just changed.
func (h *JobHandler) HandleUpdateJob(c *fiber.Ctx) error {
	jobID := c.Params("job_id")

	existing, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return respondError(c, err)
	}

	var req models.JobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	job := jobFromRequest(&req)
	job.ID = jobID
	job.CreatedAt = existing.CreatedAt
	job.UpdatedAt = time.Now()

	if err := h.jobRepo.Upsert(job); err != nil {
		return respondError(c, err)
	}

	h.resultCache.InvalidateJob(jobID)

	return c.JSON(job)
}

// HandleGetJob handles GET /jobs/:job_id
func (h *JobHandler) HandleGetJob(c *fiber.Ctx) error {
	job, err := h.jobRepo.FindByID(c.Params("job_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}

// HandleListJobs handles GET /jobs
func (h *JobHandler) HandleListJobs(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.FindAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(jobs),
		"jobs":  jobs,
	})
}

// HandleDeleteJob handles DELETE /jobs/:job_id. Removes the job, its
// candidates, its cached results and its vector store entries.
func (h *JobHandler) HandleDeleteJob(c *fiber.Ctx) error {
	jobID := c.Params("job_id")

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		return respondError(c, err)
	}

	if err := h.candRepo.DeleteByJob(jobID); err != nil {
		return respondError(c, err)
	}
	if err := h.jobRepo.Delete(jobID); err != nil {
		return respondError(c, err)
	}

	h.resultCache.InvalidateJob(jobID)
	h.retriever.RemoveJob(c.Context(), jobID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Job deleted",
		"job_id":  jobID,
	})
}

func jobFromRequest(req *models.JobRequest) *models.JobDescription {
	return &models.JobDescription{
		ID:                    req.JobID,
		Title:                 req.Title,
		Description:           req.Description,
		MandatorySkills:       req.MandatorySkills,
		OptionalSkills:        req.OptionalSkills,
		MinExperienceYears:    req.MinExperienceYears,
		EducationRequirements: req.EducationRequirements,
	}
}
