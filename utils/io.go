package utils

import (
	"bytes"
	"errors"
	"io"
	"os"
	"unsafe"

	"github.com/rs/zerolog/log"
)

var ErrTokenTooLong = errors.New("line exceeds scan buffer")

func CreateFile(path string) (file *os.File) {
	file, err := os.Create(path)
	if err != nil {
		log.Panic().Err(err).Msg("Failed to create file: " + path)
	}
	return file
}

// ToIntStr parses an unsigned decimal. ok is false on any non-digit or on uint32 overflow.
func ToIntStr(buf string) (n uint32, ok bool) {
	if len(buf) == 0 {
		return 0, false
	}
	var acc uint64
	for i := 0; i < len(buf); i++ {
		c := buf[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		acc = acc*10 + uint64(c-'0')
		if acc > 0xFFFFFFFF {
			return 0, false
		}
	}
	return uint32(acc), true
}

// var asciiSpace = [256]uint8{'\t': 1, '\n': 1, '\v': 1, '\f': 1, '\r': 1, ' ': 1}
const SPACE_MASK = 1<<9 | 1<<10 | 1<<11 | 1<<12 | 1<<13 | 1<<32

func isByteSpace(b byte) bool {
	return ((SPACE_MASK & (1 << b)) != 0)
}

func bytesAsString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// FastFields splits ASCII whitespace separated fields without allocating.
// Fields point into byteBuff. At most len(fieldBuff) fields are stored; the total count is returned.
func FastFields(fieldBuff []string, byteBuff []byte) (count int) {
	i := 0
	for i < len(byteBuff) {
		for i < len(byteBuff) && isByteSpace(byteBuff[i]) {
			i++
		}
		if i == len(byteBuff) {
			break
		}
		fieldStart := i
		for i < len(byteBuff) && !isByteSpace(byteBuff[i]) {
			i++
		}
		if count < len(fieldBuff) {
			fieldBuff[count] = bytesAsString(byteBuff[fieldStart:i])
		}
		count++
	}
	return count
}

// FastFileLines hands out lines from a reader without copying. A returned line is only
// valid until the next call to Scan.
type FastFileLines struct {
	Buf   []byte
	Start int // First non-processed byte in buf.
	End   int // End of data in buf.
	err   error
}

func NewFastFileLines(bufSize int) *FastFileLines {
	return &FastFileLines{Buf: make([]byte, bufSize)}
}

// Scan returns the next line (without the newline), or nil once the reader is exhausted.
// Err reports a read failure or a line larger than the buffer.
func (s *FastFileLines) Scan(r io.Reader) []byte {
	for {
		if s.End > s.Start {
			if i := bytes.IndexByte(s.Buf[s.Start:s.End], '\n'); i >= 0 {
				token := s.Buf[s.Start : s.Start+i]
				s.Start += i + 1
				return token
			}
		}
		if s.err == ErrTokenTooLong {
			return nil
		}
		if s.err != nil {
			if s.End > s.Start {
				i := s.Start
				s.Start = s.End
				return s.Buf[i:s.End]
			}
			return nil
		}

		// Shift the partial line to the front to make room.
		if s.Start > 0 {
			copy(s.Buf, s.Buf[s.Start:s.End])
			s.End -= s.Start
			s.Start = 0
		}
		if s.End == len(s.Buf) {
			s.err = ErrTokenTooLong
			return nil
		}

		n, err := r.Read(s.Buf[s.End:])
		s.End += n
		if err != nil {
			s.err = err
		} else if n == 0 {
			s.err = io.ErrNoProgress
		}
	}
}

// Err is the first non-EOF error seen by Scan.
func (s *FastFileLines) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}
