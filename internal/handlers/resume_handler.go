package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-engine/internal/models"
	"alfredoptarigan/ats-engine/internal/repositories"
	"alfredoptarigan/ats-engine/internal/services"
)

type ResumeHandler struct {
	jobRepo     repositories.JobRepository
	candRepo    repositories.CandidateRepository
	resultCache repositories.ResultCache
	parser      services.ResumeParserService
	pdfParser   services.PDFParserService
	storage     services.StorageService
	retriever   services.RetrievalService
	maxFileSize int64
}

func NewResumeHandler(
	jobRepo repositories.JobRepository,
	candRepo repositories.CandidateRepository,
	resultCache repositories.ResultCache,
	parser services.ResumeParserService,
	pdfParser services.PDFParserService,
	storage services.StorageService,
	retriever services.RetrievalService,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		jobRepo:     jobRepo,
		candRepo:    candRepo,
		resultCache: resultCache,
		parser:      parser,
		pdfParser:   pdfParser,
		storage:     storage,
		retriever:   retriever,
		maxFileSize: maxFileSize,
	}
}

// HandleAddResume handles POST /jobs/:job_id/resumes
func (h *ResumeHandler) HandleAddResume(c *fiber.Ctx) error {
	job, err := h.jobRepo.FindByID(c.Params("job_id"))
	if err != nil {
		return respondError(c, err)
	}

	var req models.ResumeRequest
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

	profile, err := h.registerResume(c, job, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		Success:     true,
		Message:     "Resume parsed and indexed",
		JobID:       job.ID,
		CandidateID: profile.CandidateID,
	})
}

// HandleBulkResumes handles POST /jobs/:job_id/resumes/bulk. At most 50
// resumes per request; the whole batch is validated before any resume is
// stored.
func (h *ResumeHandler) HandleBulkResumes(c *fiber.Ctx) error {
	job, err := h.jobRepo.FindByID(c.Params("job_id"))
	if err != nil {
		return respondError(c, err)
	}

	var req models.BulkResumeRequest
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

	candidateIDs := make([]string, 0, len(req.Resumes))
	for i := range req.Resumes {
		profile, err := h.registerResume(c, job, &req.Resumes[i])
		if err != nil {
			return respondError(c, err)
		}
		candidateIDs = append(candidateIDs, profile.CandidateID)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":       true,
		"message":       fmt.Sprintf("%d resumes parsed and indexed", len(candidateIDs)),
		"job_id":        job.ID,
		"candidate_ids": candidateIDs,
		"count":         len(candidateIDs),
	})
}

// HandleUploadResume handles POST /jobs/:job_id/resumes/upload with a
// multipart PDF under the "resume" field.
func (h *ResumeHandler) HandleUploadResume(c *fiber.Ctx) error {
	job, err := h.jobRepo.FindByID(c.Params("job_id"))
	if err != nil {
		return respondError(c, err)
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storage.SaveFile(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}

	text, err := h.pdfParser.ExtractText(filePath)
	if err != nil {
		h.storage.DeleteFile(filename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to extract text from PDF: %v", err),
		})
	}

	candidateName := c.FormValue("candidate_name")
	if candidateName == "" {
		candidateName = file.Filename
	}

	req := models.ResumeRequest{
		CandidateID:   c.FormValue("candidate_id"),
		CandidateName: candidateName,
		ResumeText:    text,
	}

	profile, err := h.registerResume(c, job, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		Success:     true,
		Message:     "Resume uploaded, parsed and indexed",
		JobID:       job.ID,
		CandidateID: profile.CandidateID,
	})
}

// registerResume parses, stores and indexes one resume. Re-submitting a
// candidate ID overwrites the profile and drops any cached evaluation.
func (h *ResumeHandler) registerResume(c *fiber.Ctx, job *models.JobDescription, req *models.ResumeRequest) (*models.CandidateProfile, error) {
	vocabulary := append(append([]string{}, job.MandatorySkills...), job.OptionalSkills...)

	profile := h.parser.Parse(req.ResumeText, req.CandidateName, vocabulary)
	profile.JobID = job.ID
	profile.CandidateID = req.CandidateID
	if profile.CandidateID == "" {
		profile.CandidateID = newCandidateID()
	}
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt

	if err := h.candRepo.Upsert(profile); err != nil {
		return nil, err
	}

	h.resultCache.Invalidate(job.ID, profile.CandidateID)
	h.retriever.RemoveCandidate(c.Context(), job.ID, profile.CandidateID)

	chunks, err := h.retriever.IndexResume(c.Context(), job.ID, profile.CandidateID, req.ResumeText)
	if err != nil {
		// Indexing is best effort: evaluation degrades to an empty
		// retrieval context for this candidate.
		log.Printf("⚠️  Failed to index resume for candidate %s: %v\n", profile.CandidateID, err)
	} else {
		log.Printf("✅ Indexed %d chunks for candidate %s\n", chunks, profile.CandidateID)
	}

	return profile, nil
}
