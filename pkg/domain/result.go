package domain

// Input holds the raw fields of a tool invocation, keyed by parameter name.
// Values are unvalidated: strings, numbers, booleans or []byte for file uploads.
type Input map[string]any

// Artifact is a binary product of a tool (a PDF document, an encoded image).
type Artifact struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

// Output is what a successful transform derives from its Input.
type Output struct {
	// Text is the value written to the tool's output field.
	Text string `json:"text"`

	// Fields carries named derived values, e.g. both sides of a unit conversion.
	Fields map[string]string `json:"fields,omitempty"`

	// Artifact is set by tools that produce a file.
	Artifact *Artifact `json:"artifact,omitempty"`
}

// Result is the tagged outcome of one invocation: exactly one of Success or Failure.
type Result struct {
	Tool   ToolID    `json:"tool"`
	OK     bool      `json:"ok"`
	Output *Output   `json:"output,omitempty"`
	Kind   ErrorKind `json:"kind,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// Success wraps an Output.
func Success(out Output) Result {
	return Result{OK: true, Output: &out}
}

// Failure wraps a user-facing message.
func Failure(kind ErrorKind, message string) Result {
	return Result{Kind: kind, Error: message}
}

// Text returns what an output field shows for the result: the output text on
// success, the error message on failure.
func (r Result) Text() string {
	if r.OK && r.Output != nil {
		return r.Output.Text
	}
	return r.Error
}
