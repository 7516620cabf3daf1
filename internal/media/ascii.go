package media

import (
	"context"
	"image"

	"github.com/qeesung/image2ascii/convert"
)

// ToASCII converts an image to colored ASCII art of the given size.
func ToASCII(img image.Image, width, height int) string {
	converter := convert.NewImageConverter()

	opts := convert.DefaultOptions
	opts.FixedWidth = width
	opts.FixedHeight = height
	opts.Colored = true
	opts.Ratio = 0.5 // terminal cells are about twice as tall as wide

	return converter.Image2ASCIIString(img, &opts)
}

// Preview fetches rawURL and renders it as ASCII art.
func (c *Client) Preview(ctx context.Context, rawURL string, width, height int) (string, error) {
	img, err := c.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return ToASCII(img, width, height), nil
}
