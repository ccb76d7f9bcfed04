package recording

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/palmtree-bci/palmrec/format"
	"github.com/palmtree-bci/palmrec/internal/bytestream"
	"github.com/palmtree-bci/palmrec/internal/fixture"
	"github.com/palmtree-bci/palmrec/section"
)

// parsed returns a cursor over data and its parsed header.
func parsed(t *testing.T, data []byte) (*bytestream.Cursor, *section.Header) {
	t.Helper()

	c := bytestream.NewCursor(bytes.NewReader(data), int64(len(data)))
	h, err := section.ParseHeader(c)
	require.NoError(t, err)

	return c, h
}

func columnNames(headerCols, streams int) []string {
	names := []string{"SamplePackageID", "Elapsed", "SourceInputTime"}[:headerCols]
	for i := range streams {
		names = append(names, "ch"+string(rune('A'+i%26)))
	}

	return names
}

// randomRecording builds a version 2 or 3 recording from seed. Chunked
// pipeline packages may carry short streams and, occasionally, malformed chunks.
func randomRecording(seed int64) *fixture.Builder {
	rng := rand.New(rand.NewSource(seed))

	kinds := []string{"src", "dat", "dat"}
	code := kinds[rng.Intn(len(kinds))]
	version := format.Version2 + format.Version(rng.Intn(2))

	b := fixture.New(version, code)
	b.SampleRate = float64(100 + rng.Intn(2000))
	b.NumPlaybackStreams = int32(rng.Intn(3)) //nolint: gosec
	b.IncludesSourceInputTime = version == format.Version3 && rng.Intn(2) == 0

	numStreams := 1 + rng.Intn(5)
	chunked := code == "dat" && rng.Intn(2) == 0
	b.Streams = make([]fixture.Stream, numStreams)
	for i := range b.Streams {
		spp := uint16(1)
		if chunked {
			spp = uint16(1 + rng.Intn(6)) //nolint: gosec
		}
		b.Streams[i] = fixture.Stream{DataType: 1, SamplesPerPackage: spp}
	}
	if chunked {
		b.Streams[0].SamplesPerPackage = max(b.Streams[0].SamplesPerPackage, 2)
	}

	headerCols := 2
	if b.IncludesSourceInputTime && code == "src" {
		headerCols = 3
	}
	b.ColumnNames = columnNames(headerCols, numStreams)

	maxSamples := 0
	for _, s := range b.Streams {
		maxSamples = max(maxSamples, int(s.SamplesPerPackage))
	}

	packages := rng.Intn(12)
	for p := range packages {
		id := uint32(p + 1) //nolint: gosec
		elapsed := float64(p) * 10

		switch {
		case code == "src":
			rows := make([][]float64, rng.Intn(4))
			for r := range rows {
				rows[r] = randomValues(rng, numStreams)
			}
			b.SourceInputPackage(id, elapsed, elapsed-1, rows...)
		case !chunked:
			b.PipelinePackage(id, elapsed, randomValues(rng, numStreams)...)
		default:
			b.ChunkedPackage(id, elapsed, randomChunks(rng, numStreams, maxSamples)...)
		}
	}

	return b
}

func randomValues(rng *rand.Rand, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = rng.NormFloat64()
	}

	return values
}

// randomChunks splits numStreams into chunks. One call in ten produces a chunk
// that overshoots the stream count.
func randomChunks(rng *rand.Rand, numStreams, maxSamples int) []fixture.Chunk {
	var chunks []fixture.Chunk
	for covered := 0; covered < numStreams; {
		streams := 1 + rng.Intn(numStreams-covered)
		if rng.Intn(10) == 0 {
			streams = numStreams - covered + 1
		}
		samples := rng.Intn(maxSamples + 1)

		rows := make([][]float64, samples)
		for r := range rows {
			rows[r] = randomValues(rng, streams)
		}
		c := fixture.NewChunk(rows...)
		c.StreamCount = uint16(streams) //nolint: gosec
		chunks = append(chunks, c)
		covered += streams
	}

	return chunks
}
