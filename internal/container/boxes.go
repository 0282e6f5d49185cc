package container

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Eyevinn/mp4ff/bits"
)

// rawBox carries pre-serialized box bytes, header included, through mp4ff's
// box tree. Used for the tx3g sample entry and the 'tagc' characteristic
// boxes, which mp4ff has no native type for.
type rawBox struct {
	data []byte
}

func newRawBox(data []byte) *rawBox {
	return &rawBox{data: data}
}

// newTagcBox builds the QuickTime media characteristic box; its payload is
// the bare ASCII tag.
func newTagcBox(tag string) *rawBox {
	data := make([]byte, 0, 8+len(tag))
	data = binary.BigEndian.AppendUint32(data, uint32(8+len(tag)))
	data = append(data, "tagc"...)
	data = append(data, tag...)
	return &rawBox{data: data}
}

func (b *rawBox) Type() string {
	return string(b.data[4:8])
}

func (b *rawBox) Size() uint64 {
	return uint64(len(b.data))
}

func (b *rawBox) Encode(w io.Writer) error {
	_, err := w.Write(b.data)
	return err
}

func (b *rawBox) EncodeSW(sw bits.SliceWriter) error {
	sw.WriteBytes(b.data)
	return sw.AccError()
}

func (b *rawBox) Info(w io.Writer, specificBoxLevels, indent, indentStep string) error {
	_, err := fmt.Fprintf(w, "%s[%s] size=%d\n", indent, b.Type(), b.Size())
	return err
}
