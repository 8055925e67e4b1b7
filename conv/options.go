package conv

import (
	"log/slog"

	"github.com/viant/tagly/format/text"
	"github.com/viant/xconv/internal/logging"
	"github.com/viant/xconv/tags"
)

// DefaultDateLayout is the default layout used for time parsing when no layout is specified
const DefaultDateLayout = "2006-01-02 15:04:05.000"

type (
	//Options contains configuration for the converter
	Options struct {
		//DateLayout specifies the layout for time parsing
		DateLayout string
		//TagName is the struct tag carrying convert directives
		TagName string
		//CaseFormat formats field display names, undefined keeps go names
		CaseFormat text.CaseFormat
		Logger     *slog.Logger
	}

	//Option represents a converter option
	Option func(o *Options)
)

// DefaultOptions returns default conversion options
func DefaultOptions() Options {
	return Options{
		DateLayout: DefaultDateLayout,
		TagName:    tags.TagName,
		CaseFormat: text.CaseFormatLowerCamel,
	}
}

// WithDateLayout sets time layout
func WithDateLayout(layout string) Option {
	return func(o *Options) {
		o.DateLayout = layout
	}
}

// WithTagName sets convert tag name
func WithTagName(name string) Option {
	return func(o *Options) {
		o.TagName = name
	}
}

// WithCaseFormat sets field display name case format
func WithCaseFormat(caseFormat text.CaseFormat) Option {
	return func(o *Options) {
		o.CaseFormat = caseFormat
	}
}

// WithLogger sets a logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func newOptions(opts []Option) Options {
	ret := DefaultOptions()
	for _, opt := range opts {
		opt(&ret)
	}
	if ret.DateLayout == "" {
		ret.DateLayout = DefaultDateLayout
	}
	if ret.TagName == "" {
		ret.TagName = tags.TagName
	}
	ret.Logger = logging.OrNop(ret.Logger)
	return ret
}
