package conform

import (
	"fmt"
	"strings"
)

// checkReference resolves ref by its last path segment in the definitions
// table and validates v against it. The path restarts at the raw reference.
func (w *walker) checkReference(path, ref string, v any) error {
	idx := strings.LastIndexByte(ref, '/')
	if idx < 0 {
		return w.schemaErr(path, "invalid reference: "+ref)
	}
	s, ok := w.defs[ref[idx+1:]]
	if !ok {
		return w.schemaErr(path, "invalid reference: "+ref)
	}
	if w.maxRefDepth > 0 && w.refDepth >= w.maxRefDepth {
		return w.schemaErr(path, fmt.Sprintf("reference depth limit %d exceeded at %s", w.maxRefDepth, ref))
	}
	if w.log != nil {
		w.log.Debug().Str("path", path).Str("ref", ref).Int("depth", w.refDepth+1).Msg("resolve reference")
	}
	w.refDepth++
	defer func() { w.refDepth-- }()
	return w.schema(ref, s, v)
}
