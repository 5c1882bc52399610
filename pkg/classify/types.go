package classify

import "fmt"

// Classification is the structured verdict produced by the model.
type Classification struct {
	RequestType    string `json:"request_type"`
	SubRequestType string `json:"sub_request_type"`
	Reasoning      string `json:"reasoning"`
}

// Example is a labelled request used as few-shot context.
type Example struct {
	Text           string
	RequestType    string
	SubRequestType string
}

// MalformedResponseError is returned when the model reply contains no
// parseable classification object.
type MalformedResponseError struct {
	Raw string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("no valid classification JSON in model response: %q", e.Raw)
}
