package models

// DisputeFileMetadata describes a document attached to a dispute
type DisputeFileMetadata struct {
	Filename  string `json:"filename"`
	URL       string `json:"url"`
	SizeBytes int64  `json:"size_bytes"`
}
