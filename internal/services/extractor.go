package services

import (
	"context"

	"google.golang.org/genai"

	"hrfirst/cv-parser/internal/models"
)

// ExtractorService runs the two structured language-model operations: field
// extraction from CV text and job-description generation from free-text
// requirements. Both enforce a fixed output shape.
type ExtractorService interface {
	ExtractCVData(ctx context.Context, cvText string) (models.CVFields, error)
	GenerateJobDescription(ctx context.Context, requirements string) (models.JobFields, error)
}

type extractorService struct {
	gemini GeminiService
}

func NewExtractorService(gemini GeminiService) ExtractorService {
	return &extractorService{gemini: gemini}
}

var cvDataSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":         {Type: genai.TypeString},
		"email":        {Type: genai.TypeString},
		"phone":        {Type: genai.TypeString},
		"address":      {Type: genai.TypeString},
		"education":    {Type: genai.TypeString},
		"experience":   {Type: genai.TypeString},
		"skills":       {Type: genai.TypeString},
		"linkedin_url": {Type: genai.TypeString},
	},
	Required: []string{
		"name", "email", "phone", "address",
		"education", "experience", "skills", "linkedin_url",
	},
}

var jobDescriptionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"job_title":            {Type: genai.TypeString},
		"job_description":      {Type: genai.TypeString},
		"job_experience":       {Type: genai.TypeString},
		"job_education":        {Type: genai.TypeString},
		"job_skills":           {Type: genai.TypeString},
		"job_responsibilities": {Type: genai.TypeString},
		"linkedin_url":         {Type: genai.TypeString},
	},
	Required: []string{
		"job_title", "job_description", "job_experience", "job_education",
		"job_skills", "job_responsibilities", "linkedin_url",
	},
}

// ExtractCVData implements ExtractorService.
func (e *extractorService) ExtractCVData(ctx context.Context, cvText string) (models.CVFields, error) {
	var fields models.CVFields
	if err := e.gemini.GenerateJSON(ctx, BuildCVDataPrompt(cvText), cvDataSchema, &fields); err != nil {
		return models.CVFields{}, err
	}

	normalizeCVFields(&fields)
	return fields, nil
}

// GenerateJobDescription implements ExtractorService.
func (e *extractorService) GenerateJobDescription(ctx context.Context, requirements string) (models.JobFields, error) {
	var fields models.JobFields
	if err := e.gemini.GenerateJSON(ctx, BuildJobDescriptionPrompt(requirements), jobDescriptionSchema, &fields); err != nil {
		return models.JobFields{}, err
	}

	return fields, nil
}

// normalizeCVFields replaces empty strings with the sentinel so every field
// of a successful extraction carries a value.
func normalizeCVFields(fields *models.CVFields) {
	for _, f := range []*string{
		&fields.Name, &fields.Email, &fields.Phone, &fields.Address,
		&fields.Education, &fields.Experience, &fields.Skills, &fields.LinkedinURL,
	} {
		if *f == "" {
			*f = models.SentinelNotFound
		}
	}
}
