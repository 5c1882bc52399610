package constant

const (
	// MsgGenericFailure is the catch-all shown to clients when processing
	// fails for a reason they cannot act on.
	MsgGenericFailure = "Something went wrong. Please try again after sometime."

	// MsgRateLimitedFormat is shown when the model backend is over quota.
	MsgRateLimitedFormat = "Rate limit exceeded. Retry after %d seconds."

	// MsgUnsupportedFormat is shown when the uploaded file extension is not
	// one of the supported document types.
	MsgUnsupportedFormat = "Unsupported file format. Supported formats are: .pdf, .docx, .txt, .msg, .eml, .email"

	// AttachmentContextFormat frames attachment text appended to the email
	// body before classification.
	AttachmentContextFormat = "\nAttachments content to this email is: %s. Consider this to classify the request more accurately.\nAttachments content should be deprioritized in case the request is clear from the email body itself."
)
