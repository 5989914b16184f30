package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"alfredoptarigan/ats-engine/internal/config"
	"alfredoptarigan/ats-engine/internal/repositories"
	"alfredoptarigan/ats-engine/internal/services"
)

// Bulk-ingests a directory of PDF resumes for one job:
//
//	go run scripts/ingest_resumes.go JD-a1b2c3d4 ./resumes
//
// Each PDF becomes a parsed candidate profile plus embedded chunks in the
// vector store. The candidate ID is derived from the file name.
func main() {
	if len(os.Args) < 3 {
		log.Fatalf("Usage: %s <job_id> <resume_dir>", os.Args[0])
	}
	jobID := os.Args[1]
	resumeDir := os.Args[2]

	log.Println("🚀 Starting resume ingestion...")

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	jobRepo := repositories.NewJobRepository(db)
	candRepo := repositories.NewCandidateRepository(db)

	job, err := jobRepo.FindByID(jobID)
	if err != nil {
		log.Fatalf("❌ Job %s not found: %v", jobID, err)
	}
	log.Printf("✅ Ingesting for job: %s (%s)", job.Title, job.ID)

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	resumeParser := services.NewResumeParserService()
	retriever := services.NewRetrievalService(
		geminiService,
		qdrantService,
		services.NewTextChunker(),
		cfg.Retrieval,
		cfg.Gemini.Timeout,
	)

	vocabulary := append(append([]string{}, job.MandatorySkills...), job.OptionalSkills...)

	entries, err := os.ReadDir(resumeDir)
	if err != nil {
		log.Fatalf("❌ Failed to read resume directory: %v", err)
	}

	ctx := context.Background()
	successCount := 0
	failCount := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		path := filepath.Join(resumeDir, entry.Name())
		log.Printf("\n📄 Processing: %s", entry.Name())

		content, err := pdfParser.ExtractTextWithMetaData(path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}
		log.Printf("   ✅ Extracted %d pages, %d characters", content.PageCount, len(content.Text))

		candidateName := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		profile := resumeParser.Parse(content.Text, candidateName, vocabulary)
		profile.JobID = job.ID
		profile.CandidateID = "CAND-" + strings.ToLower(strings.ReplaceAll(candidateName, " ", "-"))
		profile.CreatedAt = time.Now()
		profile.UpdatedAt = profile.CreatedAt

		if err := candRepo.Upsert(profile); err != nil {
			log.Printf("   ❌ Failed to store candidate: %v", err)
			failCount++
			continue
		}
		log.Printf("   ✅ Stored candidate %s (%d skills, %d education entries)",
			profile.CandidateID, len(profile.Skills), len(profile.Education))

		chunks, err := retriever.IndexResume(ctx, job.ID, profile.CandidateID, content.Text)
		if err != nil {
			log.Printf("   ⚠️  Indexing incomplete: %v", err)
		}
		log.Printf("   ✅ Indexed %d chunks", chunks)

		successCount++
	}

	log.Printf("\n🎉 Ingestion complete: %d succeeded, %d failed", successCount, failCount)
}
