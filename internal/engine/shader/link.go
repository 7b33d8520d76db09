package shader

// LinkProgram attaches the compiled stages to a new program and links it.
// Attachment order is vertex, geometry (when geom is non-nil), fragment.
//
// The program object is returned even when linking fails. Neither the
// program nor the stages are released here.
func LinkProgram(d Driver, vert, frag StageHandle, geom *StageHandle) (ProgramID, error) {
	id := d.CreateProgram()
	d.AttachStage(id, vert.ID)
	if geom != nil {
		d.AttachStage(id, geom.ID)
	}
	d.AttachStage(id, frag.ID)
	d.LinkProgram(id)

	if !d.LinkStatus(id) {
		return id, &Error{Kind: KindLink, Log: d.LinkLog(id)}
	}
	return id, nil
}
