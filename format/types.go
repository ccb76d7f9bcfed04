package format

import "strings"

type (
	Version         int32
	FileKind        uint8
	TimelineMethod  uint8
	CompressionType uint8
)

const (
	Version1 Version = 1 // Version1 stores fixed-size rows.
	Version2 Version = 2 // Version2 introduced epochs, stream descriptors and sample-packages.
	Version3 Version = 3 // Version3 optionally adds the source input time to source packages.
)

const (
	KindSource   FileKind = 0x0 // KindSource is data as received by the source module (.src).
	KindPipeline FileKind = 0x1 // KindPipeline is data that streamed through the pipeline (.dat).
	KindPlugin   FileKind = 0x2 // KindPlugin is data logged by a plugin.
)

const (
	ElapsedAndSamplerate TimelineMethod = 0x1 // ElapsedAndSamplerate anchors each package on its elapsed value.
	ZeroLinearSamplerate TimelineMethod = 0x2 // ZeroLinearSamplerate spaces samples at the nominal rate from zero.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents an uncompressed recording.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents a Zstandard frame.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents an S2/Snappy stream.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents an LZ4 frame.
	CompressionGzip CompressionType = 0x5 // CompressionGzip represents a gzip member.
)

// Supported reports whether the decoder understands the version.
func (v Version) Supported() bool {
	return v == Version1 || v == Version2 || v == Version3
}

// HasPackages reports whether the version stores sample-packages instead of fixed rows.
func (v Version) HasPackages() bool {
	return v == Version2 || v == Version3
}

// KindFromCode maps the three-character origin code of a recording to its FileKind.
// The comparison is case-insensitive; unknown codes are plugin data.
func KindFromCode(code string) FileKind {
	switch strings.ToLower(code) {
	case "src":
		return KindSource
	case "dat":
		return KindPipeline
	default:
		return KindPlugin
	}
}

func (k FileKind) String() string {
	switch k {
	case KindSource:
		return "Source"
	case KindPipeline:
		return "Pipeline"
	case KindPlugin:
		return "Plugin"
	default:
		return "Unknown"
	}
}

func (m TimelineMethod) String() string {
	switch m {
	case ElapsedAndSamplerate:
		return "ElapsedAndSamplerate"
	case ZeroLinearSamplerate:
		return "ZeroLinearSamplerate"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionGzip:
		return "Gzip"
	default:
		return "Unknown"
	}
}
