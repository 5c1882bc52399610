package dto

import "time"

type ClassifyTextRequest struct {
	Text string `json:"text" validate:"required"`
}

type ClassificationResponse struct {
	ExtractedText  string  `json:"extracted_text"`
	DuplicateFound bool    `json:"duplicate_found"`
	RequestType    string  `json:"request_type"`
	SubRequestType string  `json:"sub_request_type"`
	Reasoning      string  `json:"reasoning,omitempty"`
	SimilarText    string  `json:"similar_text,omitempty"`
	Similarity     float64 `json:"similarity,omitempty"`
}

type RequestRecordResponse struct {
	Id             int64     `json:"id"`
	Text           string    `json:"text"`
	RequestType    string    `json:"request_type"`
	SubRequestType string    `json:"sub_request_type"`
	HasEmbedding   bool      `json:"has_embedding"`
	CreatedAt      time.Time `json:"created_at"`
}

type ListRequestsResponse struct {
	Requests []RequestRecordResponse `json:"requests"`
	Total    int                     `json:"total"`
}

// PublishEmbedRequestMessage is the payload sent to the background embedder
// after a record is persisted without a vector.
type PublishEmbedRequestMessage struct {
	RequestId int64  `json:"request_id"`
	Text      string `json:"text"`
}
