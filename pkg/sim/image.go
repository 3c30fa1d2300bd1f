package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/moffa90/go-cyacd/cyacd"

	"github.com/robotalks/l0boot/pkg/boot"
	"github.com/robotalks/l0boot/pkg/framework"
)

// erasedByte fills flash which is not covered by an image.
const erasedByte byte = 0xff

var (
	// ErrEmptyImage indicates the image has no content.
	ErrEmptyImage = errors.New("empty image")
)

// ImageTooLargeError indicates the image doesn't fit in the address space.
type ImageTooLargeError struct {
	Base boot.Addr
	Size uint64
}

// Error implements error.
func (e *ImageTooLargeError) Error() string {
	return fmt.Sprintf("image of %d bytes at 0x%08x exceeds address space", e.Size, uint32(e.Base))
}

func newFlash(base boot.Addr, data []byte) (*Flash, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if size := uint64(len(data)); uint64(base)+size > math.MaxUint32+1 {
		return nil, &ImageTooLargeError{Base: base, Size: size}
	}
	return &Flash{Base: base, Data: data}, nil
}

// LoadBinary maps a raw image at base.
func LoadBinary(r io.Reader, base boot.Addr) (*Flash, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return newFlash(base, data)
}

// LoadFile maps a raw image file at base.
func LoadFile(path string, base boot.Addr) (*Flash, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadBinary(f, base)
}

// LoadCyacd maps the rows of a .cyacd firmware, row N at base+N*rowSize.
// rowSize 0 takes the data length of the first row. Uncovered bytes read
// as erased flash. All rows must belong to the same flash array.
func LoadCyacd(fw *cyacd.Firmware, base boot.Addr, rowSize int) (*Flash, error) {
	if fw == nil || len(fw.Rows) == 0 {
		return nil, ErrEmptyImage
	}
	if rowSize <= 0 {
		rowSize = len(fw.Rows[0].Data)
	}
	if rowSize == 0 {
		return nil, ErrEmptyImage
	}

	var errs framework.AggregatedError
	var maxRow uint16
	arrayID := fw.Rows[0].ArrayID
	seen := make(map[uint16]bool)
	for _, row := range fw.Rows {
		switch {
		case row.ArrayID != arrayID:
			errs.Add(fmt.Errorf("row %d: array %d, expect %d", row.RowNum, row.ArrayID, arrayID))
		case len(row.Data) != rowSize:
			errs.Add(fmt.Errorf("row %d: %d bytes, expect %d", row.RowNum, len(row.Data), rowSize))
		case seen[row.RowNum]:
			errs.Add(fmt.Errorf("row %d: duplicated", row.RowNum))
		}
		seen[row.RowNum] = true
		if row.RowNum > maxRow {
			maxRow = row.RowNum
		}
	}
	if err := errs.Aggregate(); err != nil {
		return nil, err
	}

	data := bytes.Repeat([]byte{erasedByte}, (int(maxRow)+1)*rowSize)
	for _, row := range fw.Rows {
		copy(data[int(row.RowNum)*rowSize:], row.Data)
	}
	return newFlash(base, data)
}

// LoadCyacdFile parses and maps a .cyacd file at base.
func LoadCyacdFile(path string, base boot.Addr) (*Flash, error) {
	fw, err := cyacd.Parse(path)
	if err != nil {
		return nil, err
	}
	return LoadCyacd(fw, base, 0)
}
