package spectro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func solidFrame(v float64) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(v, v, v, 0), CAMERA_FRAME_HEIGHT, CAMERA_FRAME_WIDTH, gocv.MatTypeCV8UC3)
}

func TestAveragingSource(t *testing.T) {
	src := &fakeSource{opened: true, frames: []gocv.Mat{solidFrame(255), solidFrame(10), solidFrame(20), solidFrame(30)}}
	defer src.Close()

	avg := &AveragingSource{Source: src, Purge: 1, Samples: 3}
	assert.True(t, avg.IsOpened())

	m := gocv.NewMat()
	defer m.Close()
	require.True(t, avg.Read(&m))
	assert.Equal(t, 4, src.reads)
	assert.Equal(t, gocv.MatTypeCV8UC3, m.Type())
	assert.Equal(t, []uint8{20, 20, 20}, m.GetVecbAt(CAMERA_FRAME_HEIGHT/2, 100))

	// Source exhausted
	assert.False(t, avg.Read(&m))
}

func TestAveragingSourceShortRead(t *testing.T) {
	src := &fakeSource{opened: true, frames: []gocv.Mat{solidFrame(10), solidFrame(20)}}
	defer src.Close()

	m := gocv.NewMat()
	defer m.Close()
	avg := NewAveragingSource(src)
	assert.False(t, avg.Read(&m))
}

func TestAveragingSourceFeedsSpectrometer(t *testing.T) {
	frames := make([]gocv.Mat, 0, 2)
	for i := 0; i < 2; i++ {
		frames = append(frames, newFrame(t, CAMERA_FRAME_WIDTH, CAMERA_FRAME_HEIGHT, spikeRow()))
	}
	src := &fakeSource{opened: true, frames: frames}
	defer src.Close()

	avg := &AveragingSource{Source: src, Samples: 2}
	frame, err := newTestSpectrometer(avg, DefaultOptions()).Capture()
	require.NoError(t, err)
	defer frame.Close()

	require.Len(t, frame.Peaks, 1)
	assert.Equal(t, 300, frame.Peaks[0].PixelIndex)
	assert.Equal(t, 200, frame.Peaks[0].Intensity)
}

func TestPreviewFrame(t *testing.T) {
	src := &fakeSource{opened: true, frames: []gocv.Mat{solidFrame(0)}}
	defer src.Close()

	preview, err := PreviewFrame(src)
	require.NoError(t, err)
	defer preview.Close()

	assert.Equal(t, PREVIEW_WIDTH, preview.Cols())
	assert.Equal(t, PREVIEW_HEIGHT, preview.Rows())
	assert.Equal(t, []uint8{255, 255, 255}, preview.GetVecbAt(PREVIEW_HEIGHT/2, PREVIEW_WIDTH/2))
	assert.Equal(t, []uint8{0, 0, 0}, preview.GetVecbAt(0, 0))
}

func TestPreviewFrameErrors(t *testing.T) {
	preview, err := PreviewFrame(&fakeSource{opened: false})
	preview.Close()
	assert.ErrorIs(t, err, ErrSourceUnavailable)

	preview, err = PreviewFrame(&fakeSource{opened: true})
	preview.Close()
	assert.ErrorIs(t, err, ErrFrameReadFailed)
}
