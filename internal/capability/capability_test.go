package capability

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdvancedReady(t *testing.T) {
	require.True(t, Flags{
		AdvancedTranscription: true,
		AudioCapture:          true,
		AudioEncoding:         true,
	}.AdvancedReady())

	// RemoteService does not gate the listening path.
	require.True(t, Flags{
		AdvancedTranscription: true,
		AudioCapture:          true,
		AudioEncoding:         true,
		RemoteService:         false,
	}.AdvancedReady())

	require.False(t, Flags{}.AdvancedReady())
	require.False(t, Flags{AdvancedTranscription: true, AudioCapture: true}.AdvancedReady())
	require.False(t, Flags{AdvancedTranscription: true, AudioEncoding: true}.AdvancedReady())
	require.False(t, Flags{AudioCapture: true, AudioEncoding: true}.AdvancedReady())
}
