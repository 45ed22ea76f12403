package dstreamtest_test

import (
	"errors"
	"testing"

	"github.com/gordian-engine/dstream"
	"github.com/gordian-engine/dstream/dstreamtest"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	t.Parallel()

	r := dstreamtest.NewRecorder[int]()
	require.Empty(t, r.Notifications())
	require.Nil(t, r.Err())
	require.False(t, r.Completed())
	require.False(t, r.Errored())

	want := errors.New("boom")
	dstream.New(func(s *dstream.Sink[int]) func() {
		s.Next(1)
		s.Next(2)
		s.Error(want)
		return nil
	}).Subscribe(r.Observer())

	require.Equal(t, []int{1, 2}, r.Values())
	require.Equal(t, want, r.Err())
	require.True(t, r.Errored())
	require.False(t, r.Completed())
	require.Equal(t, 2, r.Count(dstream.KindNext))

	notes := r.Notifications()
	require.Len(t, notes, 3)
	require.True(t, notes[2].Terminal())
	require.Equal(t, "Error", notes[2].Kind.String())
}
