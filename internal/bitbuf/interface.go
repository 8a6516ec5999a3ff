package bitbuf

//go:generate mockgen -package=mocks -destination=mocks/mock_sink.go github.com/KirkDiggler/dicebits/internal/bitbuf Sink

// Sink receives flushed words. Write returns the number of bytes actually
// accepted, which may be less than len(p).
type Sink interface {
	Write(p []byte) (n int, err error)
}
