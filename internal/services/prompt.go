package services

import "fmt"

// BuildCVDataPrompt creates the extraction prompt for a CV's plain text.
func BuildCVDataPrompt(cvText string) string {
	return fmt.Sprintf(`You are a helpful assistant that extracts data from a CV.

Extract the following data:
- name
- email
- phone
- address
- education
- experience
- skills
- linkedin_url

IMPORTANT: If data is not found, return "Not Found" for that field.

cv_data:
%s`, cvText)
}

// BuildJobDescriptionPrompt creates the generation prompt for free-text
// job requirements.
func BuildJobDescriptionPrompt(requirements string) string {
	return fmt.Sprintf(`You are a helpful assistant that creates a job description.

Upon given user requirements, you will create a job description and return it in a structured format.

Return the following data:
- job_title
- job_description
- job_experience
- job_education
- job_skills
- job_responsibilities
- linkedin_url

user_requirements:
%s`, requirements)
}
