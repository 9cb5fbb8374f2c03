package boundary

// ImageRecorder keeps a copy of a frame that confirmed a title. stage is
// "initial" for the text pass and "refined" for the frame pass.
type ImageRecorder interface {
	Record(stage, title string, frame int, path string) error
}

type noRecorder struct{}

func (noRecorder) Record(string, string, int, string) error { return nil }

func recorderOrNop(r ImageRecorder) ImageRecorder {
	if r == nil {
		return noRecorder{}
	}
	return r
}
