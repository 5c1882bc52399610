package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"loan-triage-be/pkg/llm"
)

const (
	classifySystemPrompt = "You are an expert in classifying loan service requests."
	labelSystemPrompt    = "You are an expert in document classification."

	taxonomyPromptFormat = "Allowed request(keys), sub-request types(values) in the format of dictionary : %s"

	classifyTailFormat = "\n\nNew Request:\n%s\nClassify this request amongst the available request and sub request types told in beginning and provide value of request type, sub request type(empty string if not applicable) and reasoning in json format"

	labelTailFormat = "\n\nDocument:\n%s\nIdentify the request type and sub request type of this document amongst the available request and sub request types told in beginning and provide value of request type and sub request type(empty string if not applicable) in json format"
)

// Model replies tend to wrap the verdict in prose or markdown fences, so the
// first request_type object is pulled out with a regex before unmarshalling.
var responseJSONRegex = regexp.MustCompile(`(?s)\{\s*"request_type":.*?\}`)

// Classifier assigns a request type to free-form text using an LLM.
type Classifier struct {
	provider llm.LLMProvider
}

func NewClassifier(provider llm.LLMProvider) *Classifier {
	return &Classifier{provider: provider}
}

// Classify determines the request type of text using the given taxonomy and
// few-shot examples. Returns *llm.RateLimitError when the backend is over
// quota and *MalformedResponseError when the reply cannot be parsed.
func (c *Classifier) Classify(ctx context.Context, text string, taxonomy Taxonomy, examples []Example) (*Classification, error) {
	var prompt strings.Builder
	prompt.WriteString(fmt.Sprintf(taxonomyPromptFormat, taxonomy.Dump()))

	if len(examples) > 0 {
		prompt.WriteString("\n\n")
		shots := make([]string, len(examples))
		for i, ex := range examples {
			shots[i] = fmt.Sprintf("Example %d:\nRequest: %s\nClassified as: %s - %s",
				i+1, ex.Text, ex.RequestType, ex.SubRequestType)
		}
		prompt.WriteString(strings.Join(shots, "\n\n"))
	}

	prompt.WriteString(fmt.Sprintf(classifyTailFormat, text))

	response, err := c.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: classifySystemPrompt},
		{Role: "user", Content: prompt.String()},
	}, llm.WithTemperature(0.3))
	if err != nil {
		return nil, classifyProviderError(err)
	}

	return parseClassification(response)
}

// Label is a lighter one-shot variant used to label bootstrap documents. It
// skips few-shot context and does not require reasoning in the reply.
func (c *Classifier) Label(ctx context.Context, text string, taxonomy Taxonomy) (*Classification, error) {
	prompt := fmt.Sprintf(taxonomyPromptFormat, taxonomy.Dump()) + fmt.Sprintf(labelTailFormat, text)

	response, err := c.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: labelSystemPrompt},
		{Role: "user", Content: prompt},
	}, llm.WithTemperature(0.3))
	if err != nil {
		return nil, classifyProviderError(err)
	}

	return parseClassification(response)
}

// classifyProviderError passes typed rate-limit errors through and also
// recognizes backends that only report quota hints as a JSON error string
// of the form {"retry_delay": {"seconds": N}}.
func classifyProviderError(err error) error {
	var rateErr *llm.RateLimitError
	if errors.As(err, &rateErr) {
		return rateErr
	}

	if delay := gjson.Get(err.Error(), "retry_delay.seconds"); delay.Exists() {
		return &llm.RateLimitError{
			RetryAfterSeconds: int(delay.Int()),
			Message:           err.Error(),
		}
	}

	return err
}

func parseClassification(response string) (*Classification, error) {
	match := responseJSONRegex.FindString(response)
	if match == "" {
		return nil, &MalformedResponseError{Raw: response}
	}

	var result Classification
	if err := json.Unmarshal([]byte(match), &result); err != nil {
		return nil, &MalformedResponseError{Raw: response}
	}

	// The parsed object is returned as-is: an empty request_type is the
	// model's verdict, not a transport failure, and the caller decides
	// what to do with it.
	return &result, nil
}
