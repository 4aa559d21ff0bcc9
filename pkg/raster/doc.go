// Package raster paints a resolved layout tree into an RGBA image and
// encodes that image as an uncompressed PNG.
//
// # Painting
//
// [Rasterize] walks the rendered tree parent-first and depth-first,
// filling one bordered rectangle per node (painter's algorithm: children
// land on top of their container). Nodes without an explicit background
// take a color from a fixed palette indexed by tree depth, so sibling
// levels are visually distinguishable without any per-call state.
//
// # Encoding
//
// [Encode] assembles the PNG container from first principles rather than
// delegating to an encoder: IHDR/IDAT/IEND chunks with CRC-32 trailers,
// and a zlib stream made of stored (uncompressed) deflate blocks with an
// Adler-32 checksum. Any conformant PNG decoder reproduces the original
// RGBA buffer bit-exactly; there is deliberately no compression.
package raster
