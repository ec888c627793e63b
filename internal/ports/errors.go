package ports

// ProviderError wraps a failed elevation or landcover lookup. The engine
// propagates it unchanged; retry and fallback policy live in provider
// implementations, not in the engine.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error { return e.Err }
