// Package qoi provides a pure Go encoder and decoder for the QOI image
// format.
//
// QOI ("Quite OK Image") is a lossless RGB/RGBA format that compresses
// with per-pixel delta coding, a 64-slot recency cache and run-length
// chunks. It reaches PNG-class ratios on typical images at a fraction of
// the codec complexity, which makes it popular as an interchange format
// for tools and games. This package implements the complete format
// without any CGo dependencies and registers itself with the standard
// library's image package so that image.Decode can transparently read
// QOI files.
//
// Basic usage for decoding:
//
//	img, err := qoi.Decode(reader)
//
// Basic usage for encoding:
//
//	err := qoi.Encode(writer, img, nil)
package qoi
