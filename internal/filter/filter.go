package filter

// Namespace holds the include and exclude pattern lists of one run.
// The zero value includes every namespace.
type Namespace struct {
	include []string
	exclude []string
}

// New returns a Namespace filter over copies of the given pattern lists.
func New(include, exclude []string) *Namespace {
	return &Namespace{
		include: append([]string(nil), include...),
		exclude: append([]string(nil), exclude...),
	}
}

// Included reports whether ns passes the filter. Exclusion always wins.
func (f *Namespace) Included(ns string) bool {
	if f == nil {
		return true
	}
	return Included(ns, f.include, f.exclude)
}

// Include returns the include patterns.
func (f *Namespace) Include() []string { return f.include }

// Exclude returns the exclude patterns.
func (f *Namespace) Exclude() []string { return f.exclude }

// Included reports whether ns is selected by include and not rejected by
// exclude. An empty include list selects every namespace.
func Included(ns string, include, exclude []string) bool {
	included := len(include) == 0
	for _, p := range include {
		if Match(ns, p) {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, p := range exclude {
		if Match(ns, p) {
			return false
		}
	}
	return true
}
