package entity

import "time"

// Document type ids, seeded by migrations.
const (
	DocTypeResume          = 1
	DocTypeCV              = 2
	DocTypePortfolio       = 3
	DocTypeTranscript      = 4
	DocTypeCompanyEvidence = 5
)

type DocumentType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Document struct {
	ID        int       `json:"id"`
	AccountID int       `json:"account_id"`
	DocTypeID int       `json:"doc_type_id"`
	FileName  string    `json:"file_name"`
	FilePath  string    `json:"file_path"`
	CreatedAt time.Time `json:"created_at"`
}
