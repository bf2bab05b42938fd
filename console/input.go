package console

import (
	"errors"
	"io"
	"time"

	"golang.org/x/sys/unix"
)

// escapeWait bounds how long a dangling ESC waits for the rest of a sequence.
const escapeWait = 25 * time.Millisecond

// keySource yields the keys that arrived within one poll interval. An idle
// tick returns no keys and no error.
type keySource interface {
	Poll(timeout time.Duration) ([]key, error)
}

// pollReader waits on a file descriptor with poll(2) and decodes whatever is
// readable. It never blocks longer than the requested timeout.
type pollReader struct {
	fd  int
	buf []byte
	dec keyDecoder
}

func newPollReader(fd int) *pollReader {
	return &pollReader{fd: fd, buf: make([]byte, 256)}
}

func (p *pollReader) Poll(timeout time.Duration) ([]key, error) {
	if p.dec.Pending() && timeout > escapeWait {
		timeout = escapeWait
	}
	ready, err := waitReadable(p.fd, timeout)
	if err != nil {
		return nil, err
	}
	if !ready {
		return p.dec.Flush(), nil
	}
	n, err := unix.Read(p.fd, p.buf)
	if err != nil {
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			return nil, nil
		}
		return nil, err
	}
	if n == 0 {
		return nil, io.EOF
	}
	return p.dec.Feed(p.buf[:n]), nil
}

func waitReadable(fd int, timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(timeout/time.Millisecond))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return false, nil
		}
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	revents := fds[0].Revents
	if revents&unix.POLLIN == 0 && revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 {
		return false, io.EOF
	}
	return true, nil
}
