// Package compress detects and inflates compressed Palmtree recordings.
//
// Recordings are often archived compressed. The decoder reads the first bytes of
// a source, identifies the container with Detect and inflates it in memory
// before the header is parsed:
//
//	Format   | Magic                      | Library
//	---------|----------------------------|-----------------------------------
//	Zstd     | 28 B5 2F FD                | klauspost/compress/zstd (or valyala/gozstd with -tags gozstd)
//	LZ4      | 04 22 4D 18                | pierrec/lz4/v4 frame format
//	S2       | FF 06 00 00 "S2sTwO"       | klauspost/compress/s2
//	Snappy   | FF 06 00 00 "sNaPpY"       | klauspost/compress/s2
//	Gzip     | 1F 8B                      | klauspost/compress/gzip
//
// Everything else is treated as an uncompressed recording.
//
// Example:
//
//	data, ct, err := compress.Inflate(raw)
//	if err != nil {
//	    return err // wraps errs.ErrDecompression
//	}
//	log.Printf("decoded %s recording", ct)
//
// The codecs also implement Compressor so tests can produce compressed fixtures.
package compress
