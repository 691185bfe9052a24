package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Result - обработанное изображение
type Result struct {
	Data        []byte
	Width       int
	Height      int
	ContentType string
	Ext         string
	Resized     bool
}

// Processor вписывает изображения в квадрат maxDimension без увеличения
type Processor struct {
	quality      int // JPEG 1-100
	maxDimension int
}

func NewProcessor(quality, maxDimension int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	if maxDimension <= 0 {
		maxDimension = 800
	}
	return &Processor{quality: quality, maxDimension: maxDimension}
}

// Fit декодирует и при необходимости уменьшает изображение.
// Если изображение уже помещается, исходные байты не меняются.
func (p *Processor) Fit(reader io.Reader) (*Result, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= p.maxDimension && h <= p.maxDimension {
		return &Result{
			Data:        raw,
			Width:       w,
			Height:      h,
			ContentType: "image/" + format,
			Ext:         extFor(format),
		}, nil
	}

	resized := p.resize(img, p.maxDimension, p.maxDimension)

	var buf bytes.Buffer
	res := &Result{Width: resized.Bounds().Dx(), Height: resized.Bounds().Dy(), Resized: true}
	switch format {
	case "png", "gif":
		// сохраняем прозрачность
		if err := png.Encode(&buf, resized); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
		res.ContentType, res.Ext = "image/png", ".png"
	default:
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		res.ContentType, res.Ext = "image/jpeg", ".jpg"
	}
	res.Data = buf.Bytes()
	return res, nil
}

// resize сохраняет пропорции
func (p *Processor) resize(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	ratio := float64(bounds.Dx()) / float64(bounds.Dy())

	newWidth, newHeight := maxWidth, maxHeight
	if float64(maxWidth)/float64(maxHeight) > ratio {
		newWidth = int(float64(maxHeight) * ratio)
	} else {
		newHeight = int(float64(maxWidth) / ratio)
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func extFor(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "":
		return ""
	default:
		return "." + format
	}
}
