package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitLocation(t *testing.T) {
	t.Parallel()

	bucket, key, err := SplitLocation("s3://media/avatars/u1/pic.png")
	require.NoError(t, err)
	require.Equal(t, "media", bucket)
	require.Equal(t, "avatars/u1/pic.png", key)
}

func TestSplitLocation_Invalid(t *testing.T) {
	t.Parallel()

	for _, location := range []string{
		"",
		"http://example.com/pic.png",
		"s3://",
		"s3://bucket-only",
		"s3:///no-bucket",
	} {
		_, _, err := SplitLocation(location)
		require.Error(t, err, "location %q", location)
	}
}
