package section

// StreamDescriptor describes one logged stream of a version 2+ recording.
type StreamDescriptor struct {
	// DataType is the stream's data type code, kept as recorded.
	DataType uint8
	// SamplesPerPackage is the maximum number of samples the stream logs per package.
	SamplesPerPackage uint16
}

// maxSamplesPerPackage returns the largest SamplesPerPackage over streams, or 0.
func maxSamplesPerPackage(streams []StreamDescriptor) int {
	maxSamples := 0
	for _, s := range streams {
		maxSamples = max(maxSamples, int(s.SamplesPerPackage))
	}

	return maxSamples
}
