package events

import "time"

const (
	TypeRequestClassified = "REQUEST_CLASSIFIED"
	TypeDuplicateDetected = "DUPLICATE_DETECTED"
)

// NewRequestClassifiedEvent is emitted after a request has been classified
// and persisted.
func NewRequestClassifiedEvent(recordID int64, requestType, subRequestType string) Event {
	return BaseEvent{
		Type: TypeRequestClassified,
		Data: map[string]interface{}{
			"record_id":        recordID,
			"request_type":     requestType,
			"sub_request_type": subRequestType,
		},
		OccurredAt: time.Now(),
	}
}

// NewDuplicateDetectedEvent is emitted when an incoming request matched an
// already stored one above the similarity threshold.
func NewDuplicateDetectedEvent(similarity float64, requestType, subRequestType string) Event {
	return BaseEvent{
		Type: TypeDuplicateDetected,
		Data: map[string]interface{}{
			"similarity":       similarity,
			"request_type":     requestType,
			"sub_request_type": subRequestType,
		},
		OccurredAt: time.Now(),
	}
}
