package raster

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"hash/adler32"
	"hash/crc32"
	"image"
)

// pngSignature is the fixed 8-byte PNG file header.
var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// maxStoredBlock is the deflate stored-block payload limit: the block
// length field is 16 bits.
const maxStoredBlock = 65535

// Encode serializes the image as an 8-bit RGBA PNG with no interlacing
// and no compression. The pixel data travels in stored deflate blocks,
// so any conformant decoder recovers the buffer bit-exactly.
func Encode(img *image.NRGBA) []byte {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Raw scanlines: a filter-type byte (0 = none) before each row.
	raw := make([]byte, 0, h*(1+w*4))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		raw = append(raw, 0)
		off := img.PixOffset(bounds.Min.X, y)
		raw = append(raw, img.Pix[off:off+w*4]...)
	}

	var out bytes.Buffer
	out.Write(pngSignature)
	writeChunk(&out, "IHDR", ihdr(w, h))
	writeChunk(&out, "IDAT", zlibStored(raw))
	writeChunk(&out, "IEND", nil)
	return out.Bytes()
}

// EncodeBase64 returns the PNG bytes base64-encoded for transport.
func EncodeBase64(img *image.NRGBA) string {
	return base64.StdEncoding.EncodeToString(Encode(img))
}

// ihdr builds the 13-byte IHDR payload: width, height, bit depth 8,
// color type 6 (RGBA), compression 0, filter 0, interlace 0.
func ihdr(w, h int) []byte {
	var b [13]byte
	binary.BigEndian.PutUint32(b[0:4], uint32(w))
	binary.BigEndian.PutUint32(b[4:8], uint32(h))
	b[8] = 8
	b[9] = 6
	return b[:]
}

// zlibStored wraps raw in a minimal zlib container: the 0x78 0x01 header,
// stored (uncompressed) deflate blocks of at most 65535 bytes each, and
// the big-endian Adler-32 of the uncompressed bytes.
func zlibStored(raw []byte) []byte {
	var b bytes.Buffer
	b.Grow(2 + len(raw) + 5*(len(raw)/maxStoredBlock+1) + 4)
	b.WriteByte(0x78)
	b.WriteByte(0x01)

	rest := raw
	for {
		n := len(rest)
		final := byte(0)
		if n <= maxStoredBlock {
			final = 1
		} else {
			n = maxStoredBlock
		}
		// Block header: bit 0 = final flag, bits 1-2 = 00 (stored), then
		// the little-endian length and its one's complement.
		b.WriteByte(final)
		var lens [4]byte
		binary.LittleEndian.PutUint16(lens[0:2], uint16(n))
		binary.LittleEndian.PutUint16(lens[2:4], ^uint16(n))
		b.Write(lens[:])
		b.Write(rest[:n])
		rest = rest[n:]
		if final == 1 {
			break
		}
	}

	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], adler32.Checksum(raw))
	b.Write(sum[:])
	return b.Bytes()
}

// writeChunk appends one PNG chunk: big-endian length, 4-byte type, the
// payload, and the CRC-32 of type plus payload.
func writeChunk(out *bytes.Buffer, typ string, data []byte) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(data)))
	out.Write(n[:])
	out.WriteString(typ)
	out.Write(data)

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	out.Write(sum[:])
}
