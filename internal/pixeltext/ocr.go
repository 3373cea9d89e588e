package pixeltext

// Result is one OCR pass over an image.
type Result struct {
	Text       string
	Confidence float64 // 0-100
}

// Worker recognizes text in a PNG-encoded image. Workers are scoped to a
// single detection call: acquired fresh, terminated when done, never pooled.
type Worker interface {
	Recognize(png []byte) (Result, error)
	Terminate() error
}

// WorkerFactory creates a worker for a language model ("eng").
type WorkerFactory func(lang string) (Worker, error)
