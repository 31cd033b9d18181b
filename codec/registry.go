package codec

import "sync"

// Registry is a dual-keyed lookup table of the module's built-in
// terrain/imagery decoders: each is registered under both its UID
// (the raster.CompressionType name, e.g. "delta") and its human name
// (e.g. "bgl-delta"), so a caller holding either a wire enum's String()
// or a config file's codec name finds the same decoder.
type Registry struct {
	mu    sync.RWMutex
	byKey map[string]Codec
	byUID map[string]Codec // tracks one entry per UID, for List's dedup
}

var defaultRegistry = &Registry{
	byKey: make(map[string]Codec),
	byUID: make(map[string]Codec),
}

// Register adds a codec to the default registry under both its name and UID.
func Register(codec Codec) {
	defaultRegistry.Register(codec)
}

// Get retrieves a codec by name or UID from the default registry.
func Get(nameOrUID string) (Codec, error) {
	return defaultRegistry.Get(nameOrUID)
}

// List returns the default registry's distinct codecs.
func List() []Codec {
	return defaultRegistry.List()
}

// Register indexes codec by both its name and UID.
func (r *Registry) Register(codec Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byKey[codec.Name()] = codec
	r.byKey[codec.UID()] = codec
	r.byUID[codec.UID()] = codec
}

// Get looks a codec up by either its name or its UID.
func (r *Registry) Get(nameOrUID string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byKey[nameOrUID]
	if !ok {
		return nil, ErrCodecNotFound
	}
	return c, nil
}

// List returns one entry per registered UID, in no particular order.
// Deduplicating by UID (rather than by the Codec value itself, as a
// generic registry might) matters here because these codec types are
// bare value receivers with no identity beyond their UID string.
func (r *Registry) List() []Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codecs := make([]Codec, 0, len(r.byUID))
	for _, c := range r.byUID {
		codecs = append(codecs, c)
	}
	return codecs
}
