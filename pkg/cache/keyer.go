package cache

// Keyer generates cache keys for the three pipeline stages. Keys embed every
// option that affects the stage's output so stale entries can never be
// served for a different configuration.
type Keyer interface {
	// DocumentKey generates a key for decoded document caching.
	// contentHash is the hash of the raw input file.
	DocumentKey(contentHash string) string

	// LayoutKey generates a key for layout caching.
	LayoutKey(documentHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for rendered artifact caching.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that affect layout output.
type LayoutKeyOpts struct {
	Profile string `json:"profile"`
	Budget  int    `json:"budget"`
	Depth   int    `json:"depth"`
}

// ArtifactKeyOpts are the options that affect rendered output.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Theme  string `json:"theme"`
	Width  int    `json:"width"`
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DocumentKey generates a key for decoded document caching.
func (k *DefaultKeyer) DocumentKey(contentHash string) string {
	return "document:" + contentHash
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(documentHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", documentHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
