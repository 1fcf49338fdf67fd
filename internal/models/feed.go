package models

import "time"

// TargetRecord is one fully-resolved target-schema record: every attribute
// holds a concrete literal value, never a field path.
type TargetRecord map[string]string

// FeedHeader carries the envelope metadata for a batch feed submission.
type FeedHeader struct {
	Version   string    `json:"version"`
	BatchID   string    `json:"batchId"`
	FeedDate  time.Time `json:"feedDate"`
	ItemCount int       `json:"itemCount"`
}

// FeedPayload is the batch envelope: header plus records in submission
// order. Built, sent, discarded; only the returned tracking id survives.
type FeedPayload struct {
	Header FeedHeader     `json:"MPItemFeedHeader"`
	Items  []TargetRecord `json:"MPItem"`
}

// ItemPayload is the single-item envelope some feed endpoints accept.
type ItemPayload struct {
	Item TargetRecord `json:"MPItem"`
}

// ExportResult is the target connector's answer to a feed submission.
type ExportResult struct {
	Success    bool   `json:"success"`
	TrackingID string `json:"tracking_id,omitempty"`
	Message    string `json:"message,omitempty"`
}
