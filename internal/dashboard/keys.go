package dashboard

import (
	"os"
	"sync"

	"github.com/muesli/cancelreader"
)

// Raw-mode key bytes.
const (
	keyQuit   = 'q'
	keyCtrlC  = 0x03
	keyUnits  = 's'
	keyColors = 'c'
	keyStats  = 't'
)

// action is what a key asks the loop to do.
type action int

const (
	actionNone action = iota
	actionQuit
	actionRedraw
)

// readKeys streams bytes from f until stop is called. The channel is closed
// when reading ends.
func readKeys(f *os.File) (<-chan byte, func(), error) {
	cr, err := cancelreader.NewReader(f)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan byte, 64)
	done := make(chan struct{})
	go func() {
		defer close(ch)
		buf := make([]byte, 64)
		for {
			n, err := cr.Read(buf)
			for _, b := range buf[:n] {
				select {
				case ch <- b:
				case <-done:
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			cr.Cancel()
			cr.Close()
		})
	}
	return ch, stop, nil
}
