// Package image1bit provides a 1-bit monochrome image format for MAX7219 LED
// matrices.
//
// Each LED is one bit. A byte holds 8 horizontally adjacent pixels, the left
// pixel in the most significant bit, which is exactly the layout of a MAX7219
// digit register.
//
// Memory layout example for a 16x1 image (two chained cells):
//
//	Pixels: 0 1 2 3 4 5 6 7 | 8 9 10 11 12 13 14 15
//	Values: 1 1 0 0 0 0 0 1 | 0 0 0  0  0  0  0  1
//	Bytes:  0xC1            | 0x01
//
// This package provides:
//
// - Bit: A color type representing a lit or dark LED
// - BitModel: A color model for converting standard Go colors to Bit
// - RowMSB: An image.Image implementation matching the register layout
//
// Example usage:
//
//	// Create a 16x8 image for two cells
//	img := image1bit.NewRowMSB(image.Rect(0, 0, 16, 8))
//
//	// Light a pixel
//	img.SetBit(10, 3, image1bit.On)
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(image1bit.Off), image.Point{}, draw.Src)
package image1bit
