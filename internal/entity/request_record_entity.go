package entity

import "time"

// RequestRecord is a classified request as stored in the append-only
// request log. Embedding is nil until the background embedder has
// processed the record.
type RequestRecord struct {
	Id             int64
	Text           string
	RequestType    string
	SubRequestType string
	Embedding      []float32
	CreatedAt      time.Time
}

// SimilarityMatch describes a stored record that matched an incoming
// request above the duplicate threshold.
type SimilarityMatch struct {
	Text           string
	RequestType    string
	SubRequestType string
	Similarity     float64
}
