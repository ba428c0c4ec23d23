package configs

// Configurable marks typed values whose cue expression documents where they
// come from in the config files.
type Configurable interface {
	ConfigExpr() string
}
