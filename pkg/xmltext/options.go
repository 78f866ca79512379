package xmltext

// Options holds decoder configuration values.
// The zero value means no overrides.
type Options struct {
	maxDepth     int
	maxAttrs     int
	maxTokenSize int

	maxDepthSet     bool
	maxAttrsSet     bool
	maxTokenSizeSet bool
}

// JoinOptions combines multiple option sets into one in declaration order.
// Later options override earlier ones when set.
func JoinOptions(srcs ...Options) Options {
	var merged Options
	for _, src := range srcs {
		merged.merge(src)
	}
	return merged
}

func (opts *Options) merge(src Options) {
	if src.maxDepthSet {
		opts.maxDepth = src.maxDepth
		opts.maxDepthSet = true
	}
	if src.maxAttrsSet {
		opts.maxAttrs = src.maxAttrs
		opts.maxAttrsSet = true
	}
	if src.maxTokenSizeSet {
		opts.maxTokenSize = src.maxTokenSize
		opts.maxTokenSizeSet = true
	}
}

// MaxDepth limits element nesting depth (0 means unlimited).
func MaxDepth(value int) Options {
	return Options{maxDepth: value, maxDepthSet: true}
}

// MaxAttrs limits the number of attributes per element (0 means unlimited).
func MaxAttrs(value int) Options {
	return Options{maxAttrs: value, maxAttrsSet: true}
}

// MaxTokenSize limits the size of a single event in bytes (0 means unlimited).
func MaxTokenSize(value int) Options {
	return Options{maxTokenSize: value, maxTokenSizeSet: true}
}

type decoderOptions struct {
	maxDepth     int
	maxAttrs     int
	maxTokenSize int
}

func resolveOptions(opts Options) decoderOptions {
	return decoderOptions{
		maxDepth:     normalizeLimit(opts.maxDepth),
		maxAttrs:     normalizeLimit(opts.maxAttrs),
		maxTokenSize: normalizeLimit(opts.maxTokenSize),
	}
}

func normalizeLimit(value int) int {
	if value < 0 {
		return 0
	}
	return value
}
