// avi.go - Pure Go AVI writer using Motion JPEG (MJPEG) frames.
// Each source frame is JPEG-encoded once and repeated fps*hold times, so a
// slideshow reel plays in any MJPEG-capable player without external tools.
package generator

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

type aviOptions struct {
	fps     int
	hold    int
	quality int
}

// aviWriter accumulates the first write error so header code stays flat.
type aviWriter struct {
	w   *bufio.Writer
	err error
}

func (a *aviWriter) fourCC(s string) {
	if a.err == nil {
		_, a.err = a.w.WriteString(s)
	}
}

func (a *aviWriter) u32(v uint32) {
	if a.err == nil {
		a.err = binary.Write(a.w, binary.LittleEndian, v)
	}
}

func (a *aviWriter) u16(v uint16) {
	if a.err == nil {
		a.err = binary.Write(a.w, binary.LittleEndian, v)
	}
}

func (a *aviWriter) bytes(b []byte) {
	if a.err == nil {
		_, a.err = a.w.Write(b)
	}
}

// writeAVITo writes an MJPEG AVI. All frames are drawn onto the first
// frame's dimensions.
func writeAVITo(out io.Writer, frames []image.Image, opt aviOptions) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}

	bounds := frames[0].Bounds()
	width := uint32(bounds.Dx())
	height := uint32(bounds.Dy())

	// 1. Encode every distinct frame once.
	encoded := make([][]byte, len(frames))
	var largest uint32
	for i, f := range frames {
		if f.Bounds().Dx() != bounds.Dx() || f.Bounds().Dy() != bounds.Dy() {
			f = imaging.Fill(f, bounds.Dx(), bounds.Dy(), imaging.Center, imaging.Lanczos)
		}
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, f, imaging.JPEG, imaging.JPEGQuality(opt.quality)); err != nil {
			return fmt.Errorf("encode frame %d: %w", i, err)
		}
		encoded[i] = buf.Bytes()
		largest = max(largest, uint32(buf.Len()))
	}

	// 2. Sizes.
	fps := uint32(opt.fps)
	repeat := uint32(opt.fps * opt.hold)
	totalFrames := uint32(len(frames)) * repeat
	microSecPerFrame := uint32(1000000 / fps)

	moviSize := uint32(4)
	for _, data := range encoded {
		moviSize += repeat * (8 + padded(uint32(len(data))))
	}
	idx1Size := totalFrames * 16
	hdrlSize := uint32(4 + 64 + 124) // "hdrl" + avih chunk + strl list
	riffSize := 4 + (8 + hdrlSize) + (8 + moviSize) + (8 + idx1Size)

	a := &aviWriter{w: bufio.NewWriterSize(out, 256<<10)}

	// === RIFF header ===
	a.fourCC("RIFF")
	a.u32(riffSize)
	a.fourCC("AVI ")

	// === hdrl LIST ===
	a.fourCC("LIST")
	a.u32(hdrlSize)
	a.fourCC("hdrl")

	// === avih (main header) ===
	a.fourCC("avih")
	a.u32(56)
	a.u32(microSecPerFrame)
	a.u32(largest * fps) // max bytes per sec
	a.u32(0)             // padding granularity
	a.u32(0x10)          // AVIF_HASINDEX
	a.u32(totalFrames)
	a.u32(0) // initial frames
	a.u32(1) // streams
	a.u32(largest)
	a.u32(width)
	a.u32(height)
	a.u32(0)
	a.u32(0)
	a.u32(0)
	a.u32(0)

	// === strl LIST ===
	a.fourCC("LIST")
	a.u32(116)
	a.fourCC("strl")

	// strh
	a.fourCC("strh")
	a.u32(56)
	a.fourCC("vids")
	a.fourCC("MJPG")
	a.u32(0) // flags
	a.u16(0) // priority
	a.u16(0) // language
	a.u32(0) // initial frames
	a.u32(1) // scale
	a.u32(fps)
	a.u32(0) // start
	a.u32(totalFrames)
	a.u32(largest)
	a.u32(0) // quality
	a.u32(0) // sample size
	a.u16(0)
	a.u16(0)
	a.u16(uint16(width))
	a.u16(uint16(height))

	// strf (BITMAPINFOHEADER)
	a.fourCC("strf")
	a.u32(40)
	a.u32(40)
	a.u32(width)
	a.u32(height)
	a.u16(1)  // planes
	a.u16(24) // bit count
	a.fourCC("MJPG")
	a.u32(width * height * 3)
	a.u32(0)
	a.u32(0)
	a.u32(0)
	a.u32(0)

	// === movi LIST ===
	a.fourCC("LIST")
	a.u32(moviSize)
	a.fourCC("movi")

	for _, data := range encoded {
		size := uint32(len(data))
		for r := uint32(0); r < repeat; r++ {
			a.fourCC("00dc")
			a.u32(size)
			a.bytes(data)
			if size%2 != 0 {
				a.bytes([]byte{0})
			}
		}
	}

	// === idx1 ===
	a.fourCC("idx1")
	a.u32(idx1Size)
	offset := uint32(4) // relative to "movi"
	for _, data := range encoded {
		size := uint32(len(data))
		for r := uint32(0); r < repeat; r++ {
			a.fourCC("00dc")
			a.u32(0x10) // AVIIF_KEYFRAME
			a.u32(offset)
			a.u32(size)
			offset += 8 + padded(size)
		}
	}

	if a.err != nil {
		return fmt.Errorf("write AVI: %w", a.err)
	}
	return a.w.Flush()
}

func padded(n uint32) uint32 {
	if n%2 != 0 {
		return n + 1
	}
	return n
}
