package main

import (
	"bytes"
	"io"
	"sync"
)

// logWatcher passes log output through and calls onHit once when the
// graphics driver cannot create a window.
type logWatcher struct {
	dst   io.Writer
	once  sync.Once
	onHit func()
}

func newLogWatcher(dst io.Writer, onHit func()) io.Writer {
	if dst == nil {
		dst = io.Discard
	}
	return &logWatcher{dst: dst, onHit: onHit}
}

func (w *logWatcher) Write(p []byte) (int, error) {
	if w.onHit != nil && isOpenGLFailureLog(p) {
		w.once.Do(func() {
			go w.onHit()
		})
	}
	return w.dst.Write(p)
}

var openGLFailureMarkers = [][]byte{
	[]byte("WGL: The driver does not appear to support OpenGL"),
	[]byte("APIUnavailable: WGL"),
	[]byte("GLX: No GLXFBConfigs returned"),
	[]byte("window creation error"),
}

func isOpenGLFailureLog(p []byte) bool {
	for _, marker := range openGLFailureMarkers {
		if bytes.Contains(p, marker) {
			return true
		}
	}
	return false
}
