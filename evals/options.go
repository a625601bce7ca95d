package evals

import (
	"time"

	"go.uber.org/zap"
)

const (
	DefaultConcurrency  = 20
	DefaultMaxRetries   = 3
	defaultRetryBackoff = time.Second

	DefaultQueryColumn     = "query"
	DefaultDocumentsColumn = "documents"
)

// OutputParser turns a generated text into the fields stored for a record.
type OutputParser func(text string) (map[string]any, error)

type options struct {
	systemInstruction  string
	concurrency        int
	maxRetries         int
	retryBackoff       time.Duration
	provideExplanation bool
	useFunctionCalling bool
	continueOnError    bool
	outputParser       OutputParser
	queryColumn        string
	documentsColumn    string
	logger             *zap.Logger
}

// Option configures Classify, Generate and RunRelevanceEval.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{
		concurrency:        DefaultConcurrency,
		maxRetries:         DefaultMaxRetries,
		retryBackoff:       defaultRetryBackoff,
		useFunctionCalling: true,
		outputParser:       defaultOutputParser,
		queryColumn:        DefaultQueryColumn,
		documentsColumn:    DefaultDocumentsColumn,
		logger:             zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}
	if o.maxRetries < 0 {
		o.maxRetries = 0
	}
	return o
}

// WithSystemInstruction sends instruction as the system message of every request.
func WithSystemInstruction(instruction string) Option {
	return func(o *options) { o.systemInstruction = instruction }
}

// WithConcurrency bounds the number of in-flight model calls.
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}

// WithMaxRetries sets how many times a failed model call is retried.
func WithMaxRetries(n int) Option {
	return func(o *options) { o.maxRetries = n }
}

// WithRetryBackoff sets the initial wait between retries. It doubles on each attempt.
func WithRetryBackoff(d time.Duration) Option {
	return func(o *options) { o.retryBackoff = d }
}

// WithExplanation asks the model to explain each label.
func WithExplanation(enabled bool) Option {
	return func(o *options) { o.provideExplanation = enabled }
}

// WithFunctionCalling uses function calling when the model supports it. On by default.
func WithFunctionCalling(enabled bool) Option {
	return func(o *options) { o.useFunctionCalling = enabled }
}

// WithContinueOnError keeps going after a record fails; the failure is stored on
// the record's result instead of aborting the run.
func WithContinueOnError(enabled bool) Option {
	return func(o *options) { o.continueOnError = enabled }
}

// WithOutputParser sets the parser Generate applies to each output.
func WithOutputParser(p OutputParser) Option {
	return func(o *options) { o.outputParser = p }
}

// WithQueryColumn sets the column RunRelevanceEval reads queries from.
func WithQueryColumn(name string) Option {
	return func(o *options) { o.queryColumn = name }
}

// WithDocumentsColumn sets the column RunRelevanceEval reads retrieved documents from.
func WithDocumentsColumn(name string) Option {
	return func(o *options) { o.documentsColumn = name }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func defaultOutputParser(text string) (map[string]any, error) {
	return map[string]any{"output": text}, nil
}
