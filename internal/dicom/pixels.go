package dicom

import (
	"fmt"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// HasPixelData reports whether the dataset carries a pixel data element.
func (f *File) HasPixelData() bool {
	_, err := f.Data.FindElementByTag(tag.PixelData)
	return err == nil
}

// Rows returns the declared image height, or 0 if absent.
func (f *File) Rows() int {
	return f.getInt(tag.Rows)
}

// Columns returns the declared image width, or 0 if absent.
func (f *File) Columns() int {
	return f.getInt(tag.Columns)
}

// BitsAllocated returns the bits allocated per sample, defaulting to 8.
func (f *File) BitsAllocated() int {
	if v := f.getInt(tag.BitsAllocated); v != 0 {
		return v
	}
	return 8
}

// SamplesPerPixel returns the samples per pixel, defaulting to 1 (grayscale).
func (f *File) SamplesPerPixel() int {
	if v := f.getInt(tag.SamplesPerPixel); v != 0 {
		return v
	}
	return 1
}

// GrayFrame extracts the first frame as an 8-bit grayscale buffer of
// rows*cols values. Multi-sample pixels are averaged down to one channel,
// and when BitsAllocated declares samples deeper than 8 bits the frame is
// min/max normalized so burned-in text stays legible regardless of the
// source bit depth.
func (f *File) GrayFrame(rows, cols int) ([]byte, error) {
	pixelElem, err := f.Data.FindElementByTag(tag.PixelData)
	if err != nil {
		return nil, fmt.Errorf("no pixel data found: %w", err)
	}

	info, ok := pixelElem.Value.GetValue().(dicom.PixelDataInfo)
	if !ok {
		return nil, fmt.Errorf("unsupported pixel data type: %T", pixelElem.Value.GetValue())
	}
	if len(info.Frames) == 0 {
		return nil, fmt.Errorf("no frames in pixel data")
	}

	frame := info.Frames[0]
	if frame.NativeData.Data == nil {
		return nil, fmt.Errorf("frame is not native pixel data")
	}

	data := frame.NativeData.Data
	count := rows * cols
	if len(data) < count {
		count = len(data)
	}

	samples := f.SamplesPerPixel()
	gray := func(px []int) int {
		if samples > 1 && len(px) >= samples {
			sum := 0
			for _, s := range px[:samples] {
				sum += s
			}
			return sum / samples
		}
		return px[0]
	}

	minV, maxV := 0, 0
	first := true
	for i := 0; i < count; i++ {
		if len(data[i]) == 0 {
			continue
		}
		v := gray(data[i])
		if first || v < minV {
			minV = v
		}
		if first || v > maxV {
			maxV = v
		}
		first = false
	}

	deep := f.BitsAllocated() > 8
	out := make([]byte, rows*cols)
	scale := maxV - minV
	for i := 0; i < count; i++ {
		if len(data[i]) == 0 {
			continue
		}
		v := gray(data[i])
		if deep && scale > 0 {
			out[i] = byte((v - minV) * 255 / scale)
		} else {
			out[i] = byte(v)
		}
	}
	return out, nil
}

// getInt extracts an integer value from an element, or 0 if absent.
func (f *File) getInt(t tag.Tag) int {
	elem, err := f.Data.FindElementByTag(t)
	if err != nil || elem.Value == nil {
		return 0
	}

	switch v := elem.Value.GetValue().(type) {
	case []int:
		if len(v) > 0 {
			return v[0]
		}
	case int:
		return v
	case []uint16:
		if len(v) > 0 {
			return int(v[0])
		}
	case uint16:
		return int(v)
	}
	return 0
}
