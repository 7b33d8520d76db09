package shader

// CompileStage compiles src as a stage of the given kind.
//
// The stage object is allocated even when compilation fails and the returned
// handle is valid in both cases; the caller must release it with DeleteStage.
func CompileStage(d Driver, kind StageKind, src string) (StageHandle, error) {
	h := StageHandle{Kind: kind, ID: d.CreateStage(kind)}
	d.SetStageSource(h.ID, src)
	d.CompileStage(h.ID)

	if !d.CompileStatus(h.ID) {
		return h, &Error{
			Kind:  compileKind(kind),
			Stage: kind,
			Log:   d.CompileLog(h.ID),
		}
	}
	return h, nil
}
