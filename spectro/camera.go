package spectro

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// OpenCamera opens device (an index such as "0" or a video file) at
// CAMERA_FRAME_WIDTH x CAMERA_FRAME_HEIGHT and CAMERA_FRAMERATE.
// The caller closes the returned capture.
func OpenCamera(device string) (*gocv.VideoCapture, error) {
	vid, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("opening camera %q: %w", device, err)
	}
	vid.Set(gocv.VideoCaptureFrameWidth, CAMERA_FRAME_WIDTH)
	vid.Set(gocv.VideoCaptureFrameHeight, CAMERA_FRAME_HEIGHT)
	vid.Set(gocv.VideoCaptureFPS, float64(CAMERA_FRAMERATE))
	if !vid.IsOpened() {
		vid.Close()
		return nil, fmt.Errorf("camera %q: %w", device, ErrSourceUnavailable)
	}

	INFOLogger.Printf("Capture (%v x %v) @ %v fps",
		vid.Get(gocv.VideoCaptureFrameHeight),
		vid.Get(gocv.VideoCaptureFrameWidth),
		vid.Get(gocv.VideoCaptureFPS),
	)
	return vid, nil
}

const (
	CAMERA_SAMPLE_PURGE_SIZE = 3
	CAMERA_SAMPLE_SIZE       = 3
)

// AveragingSource answers every read with the mean of Samples consecutive
// frames of Source, after dropping Purge stale ones.
type AveragingSource struct {
	Source  FrameSource
	Purge   int
	Samples int
}

func NewAveragingSource(src FrameSource) *AveragingSource {
	return &AveragingSource{
		Source:  src,
		Purge:   CAMERA_SAMPLE_PURGE_SIZE,
		Samples: CAMERA_SAMPLE_SIZE,
	}
}

func (a *AveragingSource) IsOpened() bool {
	return a.Source.IsOpened()
}

func (a *AveragingSource) Read(m *gocv.Mat) bool {
	frame := gocv.NewMat()
	defer frame.Close()

	// Purge buffered frames
	for i := 0; i < a.Purge; i++ {
		if !a.Source.Read(&frame) {
			return false
		}
	}

	samples := a.Samples
	if samples < 1 {
		samples = 1
	}
	masterMat := gocv.NewMat()
	defer func() { masterMat.Close() }()
	// Accumulate samples frames in 16 bits
	for i := 0; i < samples; i++ {
		if !a.Source.Read(&frame) || frame.Empty() {
			return false
		}
		if i == 0 {
			masterMat.Close()
			masterMat = gocv.Zeros(frame.Rows(), frame.Cols(), gocv.MatTypeCV16UC3)
		}
		if frame.Rows() != masterMat.Rows() || frame.Cols() != masterMat.Cols() || frame.Channels() != 3 {
			WARNINGLogger.Printf("AveragingSource: frame %d is %dx%d, expected %dx%d", i, frame.Cols(), frame.Rows(), masterMat.Cols(), masterMat.Rows())
			return false
		}
		wide := gocv.NewMat()
		frame.ConvertTo(&wide, gocv.MatTypeCV16UC3)
		gocv.Add(wide, masterMat, &masterMat)
		wide.Close()
	}
	// Divide by the sample count and convert back to 8U
	masterMat.DivideUChar(uint8(samples))
	masterMat.ConvertTo(m, gocv.MatTypeCV8UC3)
	return true
}

// PreviewFrame reads one frame scaled down to PREVIEW_WIDTH x PREVIEW_HEIGHT
// with the sampled scanline marked in white. The caller closes the Mat.
func PreviewFrame(src FrameSource) (gocv.Mat, error) {
	if !src.IsOpened() {
		return gocv.NewMat(), stageError(STAGE_CAPTURE, ErrSourceUnavailable, nil)
	}
	frame := gocv.NewMat()
	defer frame.Close()
	if ok := src.Read(&frame); !ok || frame.Empty() {
		return gocv.NewMat(), stageError(STAGE_CAPTURE, ErrFrameReadFailed, nil)
	}

	preview := gocv.NewMat()
	gocv.Resize(frame, &preview, image.Pt(PREVIEW_WIDTH, PREVIEW_HEIGHT), 0, 0, gocv.InterpolationLinear)
	gocv.Line(&preview, image.Pt(0, PREVIEW_HEIGHT/2), image.Pt(PREVIEW_WIDTH, PREVIEW_HEIGHT/2), White, 1)
	return preview, nil
}

// ShowImage displays img until a key is pressed.
func ShowImage(title string, img gocv.Mat) {
	window := gocv.NewWindow(title)
	defer window.Close()
	window.IMShow(img)
	window.WaitKey(0)
}

// LivePreview shows a freshly captured graph per frame until a key is
// pressed, then returns the last one. The caller closes it.
func LivePreview(s *Spectrometer, title string) (*SpectralFrame, error) {
	window := gocv.NewWindow(title)
	defer window.Close()

	var last *SpectralFrame
	for {
		frame, err := s.Capture()
		if err != nil {
			if last != nil {
				last.Close()
			}
			return nil, err
		}
		if last != nil {
			last.Close()
		}
		last = frame

		window.IMShow(frame.Image)
		if window.WaitKey(1) >= 0 {
			return last, nil
		}
	}
}
