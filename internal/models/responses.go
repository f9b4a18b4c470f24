package models

// UploadSummaryResponse aggregates one upload request. Details maps original
// filenames to their extracted field sets; files that failed are counted but
// carry no entry.
type UploadSummaryResponse struct {
	Message string              `json:"message"`
	Details map[string]CVFields `json:"details"`
}

type JobDescriptionResponse struct {
	Message        string     `json:"message"`
	JobDescription *JobRecord `json:"job_description"`
}
